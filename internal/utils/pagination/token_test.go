package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDateBasedToken(t *testing.T) {
	month := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	token := EncodeDateBasedToken(month)
	assert.NotEmpty(t, token)

	decoded, err := DecodeDateBasedToken(token)
	assert.NoError(t, err)
	assert.Equal(t, month, decoded)

	// non-UTC input comes back as the same instant in UTC
	local := time.Date(2025, time.March, 1, 3, 0, 0, 0, time.FixedZone("MSK", 3*60*60))
	decoded, err = DecodeDateBasedToken(EncodeDateBasedToken(local))
	assert.NoError(t, err)
	assert.True(t, local.Equal(decoded))
	assert.Equal(t, time.UTC, decoded.Location())
}

func TestDecodeDateBasedTokenError(t *testing.T) {
	_, err := DecodeDateBasedToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	_, err = DecodeDateBasedToken("bm90YWRhdGU=") // "notadate"
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "date parse")
}
