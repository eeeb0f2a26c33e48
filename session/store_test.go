package session

import (
	goerrors "errors"
	"log/slog"
	"testing"

	"duochat/domain"
	"duochat/errors"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenInMemory(slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestStore_Round_Trips_The_Session(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t)
	user := domain.Participant{ID: "u1", DisplayName: "Uno", Email: "uno@chat.test"}

	req.NoError(store.SaveToken("tok-1"))
	req.NoError(store.SaveUser(user))

	token, err := store.LoadToken()
	req.NoError(err)
	req.Equal("tok-1", token)

	loaded, err := store.LoadUser()
	req.NoError(err)
	req.Equal(user, loaded)
}

func TestStore_Empty_Reads_Report_No_Session(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t)

	_, err := store.LoadToken()
	req.True(goerrors.Is(err, errors.ErrNoSession))

	_, err = store.LoadUser()
	req.True(goerrors.Is(err, errors.ErrNoSession))
}

func TestStore_Save_Overwrites_The_Previous_Session(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t)

	req.NoError(store.SaveToken("tok-old"))
	req.NoError(store.SaveToken("tok-new"))

	token, err := store.LoadToken()
	req.NoError(err)
	req.Equal("tok-new", token)
}

func TestStore_Clear_Wipes_Both_Entries(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t)
	req.NoError(store.SaveToken("tok-1"))
	req.NoError(store.SaveUser(domain.Participant{ID: "u1"}))

	req.NoError(store.Clear())

	_, err := store.LoadToken()
	req.True(goerrors.Is(err, errors.ErrNoSession))
	_, err = store.LoadUser()
	req.True(goerrors.Is(err, errors.ErrNoSession))
}

func TestStore_Clear_On_Empty_Store_Is_A_Noop(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t)

	req.NoError(store.Clear())
}
