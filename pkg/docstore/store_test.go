package docstore

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type widgetDoc struct {
	XMLName xml.Name `xml:"widgets"`
	Widgets []widget `xml:"widget"`
}

type widget struct {
	ID   int64  `xml:"id,attr"`
	Name string `xml:"name"`
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestReplaceThenLoad(t *testing.T) {
	s := newTestStore(t)
	c := s.Collection("widgets")

	in := widgetDoc{Widgets: []widget{{ID: 1, Name: "alpha"}, {ID: 2, Name: "beta"}}}
	require.NoError(t, c.Replace(&in))

	var out widgetDoc
	require.NoError(t, c.Load(&out))
	assert.Equal(t, in.Widgets, out.Widgets)
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := newTestStore(t)

	var out widgetDoc
	require.NoError(t, s.Collection("widgets").Load(&out))
	assert.Empty(t, out.Widgets)
}

func TestLoadCorruptFileIsEmpty(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, zap.NewNop())
	require.NoError(t, err)

	path := filepath.Join(dir, "widgets.xml")
	require.NoError(t, os.WriteFile(path, []byte("<widgets><widget id="), 0o644))

	var out widgetDoc
	require.NoError(t, s.Collection("widgets").Load(&out))
	assert.Empty(t, out.Widgets)
}

func TestCollectionHandleIsShared(t *testing.T) {
	s := newTestStore(t)
	if s.Collection("widgets") != s.Collection("widgets") {
		t.Fatal("expected the same handle for the same collection name")
	}
}

func TestUpdateMergesUnderLock(t *testing.T) {
	s := newTestStore(t)
	c := s.Collection("widgets")

	seed := widgetDoc{Widgets: []widget{{ID: 1, Name: "alpha"}}}
	require.NoError(t, c.Replace(&seed))

	err := c.Update(func(tx *Tx) error {
		var doc widgetDoc
		if err := tx.Load(&doc); err != nil {
			return err
		}
		doc.Widgets = append(doc.Widgets, widget{ID: 2, Name: "beta"})
		return tx.Store(&doc)
	})
	require.NoError(t, err)

	var out widgetDoc
	require.NoError(t, c.Load(&out))
	require.Len(t, out.Widgets, 2)
	assert.Equal(t, "beta", out.Widgets[1].Name)
}

func TestResetRemovesCollectionFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, zap.NewNop())
	require.NoError(t, err)

	c := s.Collection("widgets")
	require.NoError(t, c.Replace(&widgetDoc{Widgets: []widget{{ID: 1}}}))
	require.NoError(t, s.Reset())

	if _, err := os.Stat(filepath.Join(dir, "widgets.xml")); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, stat err = %v", err)
	}

	var out widgetDoc
	require.NoError(t, c.Load(&out))
	assert.Empty(t, out.Widgets)
}

func TestWrittenFileCarriesXMLHeader(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, s.Collection("widgets").Replace(&widgetDoc{}))
	raw, err := os.ReadFile(filepath.Join(dir, "widgets.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `<?xml version="1.0" encoding="UTF-8"?>`)
}
