package mongostore

import (
	"errors"
	"testing"

	"github.com/kovidbehl97/vroomtest/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCarFilter(t *testing.T) {
	assert.Empty(t, carFilter(domain.CarFilter{}))

	f := carFilter(domain.CarFilter{Search: "a.b", CarType: domain.CarSUV, Transmission: domain.TransmissionManual})
	assert.Equal(t, "SUV", f["carType"])
	assert.Equal(t, "Manual", f["transmission"])

	or, ok := f["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 2)
	re := or[0].(bson.M)["make"].(primitive.Regex)
	assert.Equal(t, `a\.b`, re.Pattern)
	assert.Equal(t, "i", re.Options)
}

func TestCarSet(t *testing.T) {
	assert.Empty(t, carSet(domain.CarPatch{}))

	price := 61.0
	set := carSet(domain.CarPatch{Price: &price, ImageURLSet: true})
	assert.Equal(t, 61.0, set["price"])
	v, ok := set["imageUrl"]
	assert.True(t, ok)
	assert.Nil(t, v)
	assert.NotContains(t, set, "make")
	assert.NotContains(t, set, "_id")
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(mongo.ErrNoDocuments), domain.ErrNotFound)

	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key"}}}
	assert.ErrorIs(t, translate(dup), domain.ErrDuplicate)

	other := errors.New("server selection timeout")
	assert.Equal(t, other, translate(other))
}
