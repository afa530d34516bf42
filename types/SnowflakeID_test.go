package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnowflakeIDJSON(t *testing.T) {
	raw, err := json.Marshal(SnowflakeID(1790000000000000123))
	require.NoError(t, err)
	assert.Equal(t, `"1790000000000000123"`, string(raw))

	var id SnowflakeID
	require.NoError(t, json.Unmarshal([]byte(`"42"`), &id))
	assert.Equal(t, SnowflakeID(42), id)
	require.NoError(t, json.Unmarshal([]byte(`43`), &id))
	assert.Equal(t, SnowflakeID(43), id)
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &id))
}

func TestSnowflakeIDScan(t *testing.T) {
	var id SnowflakeID
	require.NoError(t, id.Scan(int64(7)))
	assert.Equal(t, SnowflakeID(7), id)
	require.NoError(t, id.Scan([]byte("8")))
	assert.Equal(t, SnowflakeID(8), id)
	require.NoError(t, id.Scan("9"))
	assert.Equal(t, SnowflakeID(9), id)
	assert.Error(t, id.Scan(1.5))

	v, err := SnowflakeID(10).Value()
	require.NoError(t, err)
	assert.Equal(t, int64(10), v)
}
