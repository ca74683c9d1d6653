package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    Filter
		wantErr bool
	}{
		{in: "", want: FilterAll},
		{in: "all", want: FilterAll},
		{in: "unread", want: FilterUnread},
		{in: "saved", want: FilterSaved},
		{in: "starred", wantErr: true},
		{in: "ALL", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParseFilter(tc.in)
		if tc.wantErr {
			require.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}
}

func TestOptionsForScope(t *testing.T) {
	t.Parallel()

	all := OptionsForScope(Scope{CollectionID: 1, Filter: FilterAll}, 20, 40)
	require.Equal(t, ListOptions{Limit: 20, Offset: 40}, all)

	unread := OptionsForScope(Scope{CollectionID: 1, Filter: FilterUnread}, 20, 0)
	require.True(t, unread.UnreadOnly)
	require.False(t, unread.SavedOnly)

	saved := OptionsForScope(Scope{CollectionID: 1, Filter: FilterSaved}, 20, 0)
	require.False(t, saved.UnreadOnly)
	require.True(t, saved.SavedOnly)
}

func TestScope_Equality(t *testing.T) {
	t.Parallel()

	require.Equal(t, Scope{CollectionID: 1, Filter: FilterAll}, Scope{CollectionID: 1, Filter: FilterAll})
	require.NotEqual(t, Scope{CollectionID: 1, Filter: FilterAll}, Scope{CollectionID: 1, Filter: FilterUnread})
	require.NotEqual(t, Scope{CollectionID: 1, Filter: FilterAll}, Scope{CollectionID: 2, Filter: FilterAll})
}
