package entity_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
)

func TestDate_JSON(t *testing.T) {
	var e entity.Exit
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-03-20"}`), &e))
	assert.Equal(t, "2024-03-20", e.Date.String())

	out, err := json.Marshal(e.Date)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-20"`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`{"date":""}`), &e))
	assert.True(t, e.Date.IsZero())
	assert.Nil(t, e.RecordDate())
}

func TestDate_RFC3339SeTruncaAlDia(t *testing.T) {
	d, err := entity.ParseDate("2024-03-20T15:04:05-05:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-20", d.String())

	_, err = entity.ParseDate("20/03/2024")
	assert.Error(t, err)
}

func TestIsValidRole(t *testing.T) {
	for _, r := range entity.Roles {
		assert.True(t, entity.IsValidRole(r))
	}
	assert.False(t, entity.IsValidRole("admin"))
}

func TestSession_Expired(t *testing.T) {
	now := time.Now()
	s := entity.Session{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, s.Expired(now))
	assert.True(t, s.Expired(now.Add(time.Minute)))
	assert.False(t, (&entity.Session{}).Expired(now), "sin vencimiento nunca expira")
}

func TestProduct_LowStock(t *testing.T) {
	assert.True(t, (&entity.Product{Stock: 2, MinStock: 2}).LowStock())
	assert.False(t, (&entity.Product{Stock: 3, MinStock: 2}).LowStock())
}
