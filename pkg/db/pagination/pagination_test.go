package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	token, err := EncodeCursor(Cursor{ID: "123456789"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	cursor, err := DecodeCursor(token)
	require.NoError(t, err)
	assert.Equal(t, "123456789", cursor.ID)

	_, err = DecodeCursor("not base64 !!!")
	assert.Error(t, err)
}

func TestBuildCursorPageInfo(t *testing.T) {
	type row struct{ ID string }
	extract := func(r *row) string { return r.ID }

	empty := BuildCursorPageInfo(nil, 10, extract)
	assert.False(t, empty.HasMore)
	assert.Empty(t, empty.NextPageToken)

	rows := []*row{{"1"}, {"2"}, {"3"}}
	info := BuildCursorPageInfo(rows, 2, extract)
	assert.True(t, info.HasMore)
	assert.Equal(t, "2", info.NextPageToken)

	info = BuildCursorPageInfo(rows, 5, extract)
	assert.False(t, info.HasMore)
	assert.Equal(t, "3", info.NextPageToken)
}
