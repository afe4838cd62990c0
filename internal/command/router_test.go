package command

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeClearer struct {
	cleared []int64
	existed bool
}

func (f *fakeClearer) Clear(id int64) bool {
	f.cleared = append(f.cleared, id)
	return f.existed
}

func TestIsCommand(t *testing.T) {
	t.Parallel()
	r := NewRouter(nil, &fakeClearer{})

	cases := []struct {
		text string
		want bool
	}{
		{"/start", true},
		{"/help", true},
		{"/clear", true},
		{"/anything", true},
		{"Tengo fiebre", false},
		{"hola /start", false},
		{"", false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, r.IsCommand(tc.text), "text %q", tc.text)
	}
}

func TestRoute_FixedReplies(t *testing.T) {
	t.Parallel()
	r := NewRouter(nil, &fakeClearer{existed: true})

	require.Equal(t, WelcomeReply, r.Route(1, "/start"))
	require.Equal(t, HelpReply, r.Route(1, "/help"))
	require.Equal(t, UnknownReply, r.Route(1, "/fiebre"))
	require.Equal(t, UnknownReply, r.Route(1, "/"))
}

func TestRoute_Clear(t *testing.T) {
	t.Parallel()
	clearer := &fakeClearer{existed: true}
	r := NewRouter(nil, clearer)

	require.Equal(t, ClearedReply, r.Route(9, "/clear"))
	require.Equal(t, []int64{9}, clearer.cleared)
}

func TestRoute_ClearUnknownSession(t *testing.T) {
	t.Parallel()
	clearer := &fakeClearer{existed: false}
	r := NewRouter(nil, clearer)

	// Still a fixed confirmation; the deletion is a no-op.
	require.Equal(t, ClearedReply, r.Route(9, "/clear"))
	require.Equal(t, []int64{9}, clearer.cleared)
}

func TestRoute_GroupSuffixAndArguments(t *testing.T) {
	t.Parallel()
	r := NewRouter(nil, &fakeClearer{existed: true})

	require.Equal(t, WelcomeReply, r.Route(1, "/start@medgate_bot"))
	require.Equal(t, ClearedReply, r.Route(1, "/clear ahora"))
	require.Equal(t, HelpReply, r.Route(1, "/HELP"))
}
