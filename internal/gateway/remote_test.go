package gateway

import (
	"context"
	"path/filepath"
	"testing"

	"garderobe/internal/models"

	"github.com/jinzhu/gorm"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open("sqlite3", filepath.Join(t.TempDir(), "remote.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.AutoMigrate(&models.GarmentDocument{}).Error)
	return db
}

func TestFetchAllEmptyWardrobe(t *testing.T) {
	remote := NewRemote(testDB(t), "ada")

	items, err := remote.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAddColorCreatesDocument(t *testing.T) {
	remote := NewRemote(testDB(t), "ada")
	ctx := context.Background()

	require.NoError(t, remote.AddColor(ctx, "shirt", "#FF0000"))

	items, err := remote.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "shirt", items[0].ID)
	assert.Equal(t, []string{"#FF0000"}, items[0].Colors)
}

func TestAddColorIsIdempotent(t *testing.T) {
	remote := NewRemote(testDB(t), "ada")
	ctx := context.Background()

	require.NoError(t, remote.AddColor(ctx, "shirt", "#FF0000"))
	require.NoError(t, remote.AddColor(ctx, "shirt", "#FF0000"))
	require.NoError(t, remote.AddColor(ctx, "shirt", "#00FF00"))

	items, err := remote.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, []string{"#FF0000", "#00FF00"}, items[0].Colors)
}

func TestRemoveColorKeepsDocument(t *testing.T) {
	remote := NewRemote(testDB(t), "ada")
	ctx := context.Background()

	require.NoError(t, remote.AddColor(ctx, "shirt", "#FF0000"))
	require.NoError(t, remote.AddColor(ctx, "shirt", "#00FF00"))
	require.NoError(t, remote.RemoveColor(ctx, "shirt", "#FF0000", false))

	items, err := remote.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, []string{"#00FF00"}, items[0].Colors)
}

func TestRemoveLastColorDeletesDocument(t *testing.T) {
	remote := NewRemote(testDB(t), "ada")
	ctx := context.Background()

	require.NoError(t, remote.AddColor(ctx, "shirt", "#FF0000"))
	require.NoError(t, remote.RemoveColor(ctx, "shirt", "#FF0000", true))

	items, err := remote.FetchAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRemoveColorMissingDocumentIsNoOp(t *testing.T) {
	remote := NewRemote(testDB(t), "ada")

	assert.NoError(t, remote.RemoveColor(context.Background(), "shirt", "#FF0000", false))
}

func TestSetColorsReplacesList(t *testing.T) {
	remote := NewRemote(testDB(t), "ada")
	ctx := context.Background()

	require.NoError(t, remote.AddColor(ctx, "shirt", "#FF0000"))
	require.NoError(t, remote.SetColors(ctx, "shirt", []string{"#111111", "#222222"}))

	items, err := remote.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, []string{"#111111", "#222222"}, items[0].Colors)
}

func TestSetColorsCreatesDocumentIfAbsent(t *testing.T) {
	remote := NewRemote(testDB(t), "ada")
	ctx := context.Background()

	require.NoError(t, remote.SetColors(ctx, "heels", []string{"#333333"}))

	items, err := remote.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "heels", items[0].ID)
}

func TestDeleteItemRemovesDocument(t *testing.T) {
	remote := NewRemote(testDB(t), "ada")
	ctx := context.Background()

	require.NoError(t, remote.AddColor(ctx, "shirt", "#FF0000"))
	require.NoError(t, remote.DeleteItem(ctx, "shirt"))

	items, err := remote.FetchAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUsersAreNamespaced(t *testing.T) {
	db := testDB(t)
	ada := NewRemote(db, "ada")
	bob := NewRemote(db, "bob")
	ctx := context.Background()

	require.NoError(t, ada.AddColor(ctx, "shirt", "#FF0000"))
	require.NoError(t, bob.AddColor(ctx, "heels", "#000000"))
	require.NoError(t, bob.DeleteItem(ctx, "shirt"))

	adaItems, err := ada.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, adaItems, 1)
	assert.Equal(t, "shirt", adaItems[0].ID)

	bobItems, err := bob.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, bobItems, 1)
	assert.Equal(t, "heels", bobItems[0].ID)
}

func TestCanceledContextFailsWithRemoteError(t *testing.T) {
	remote := NewRemote(testDB(t), "ada")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := remote.AddColor(ctx, "shirt", "#FF0000")
	require.Error(t, err)
	var remoteErr *RemoteError
	assert.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "add_color", remoteErr.Op)
}
