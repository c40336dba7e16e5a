package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taipei_hotels/internal/domain"
)

func TestAggregateDistricts(t *testing.T) {
	rows := []domain.Merged{
		{District: strp("大安區"), Rooms: intp(50)},
		{District: strp("大安區"), Rooms: nil},
		{District: strp("中正區"), Rooms: intp(30)},
		{District: nil, Rooms: intp(10)},
	}
	out := AggregateDistricts(rows)
	require.Len(t, out, 3)

	byName := map[string]domain.DistrictRow{}
	for _, d := range out {
		byName[d.Name] = d
	}

	assert.Equal(t, 2, byName["大安區"].Hotels)
	assert.Equal(t, 50, byName["大安區"].Rooms) // nil rooms count the hotel, add zero
	assert.Equal(t, 1, byName["中正區"].Hotels)
	assert.Equal(t, 30, byName["中正區"].Rooms)
	assert.Equal(t, 1, byName[domain.UnknownDistrict].Hotels)
	assert.Equal(t, 10, byName[domain.UnknownDistrict].Rooms)
}

func TestAggregateDistricts_SortedAscending(t *testing.T) {
	rows := []domain.Merged{
		{District: strp("c")},
		{District: strp("a")},
		{District: strp("b")},
	}
	out := AggregateDistricts(rows)
	require.Len(t, out, 3)
	assert.Equal(t, "a", out[0].Name)
	assert.Equal(t, "b", out[1].Name)
	assert.Equal(t, "c", out[2].Name)
}

func TestAggregateDistricts_EmptyInput(t *testing.T) {
	assert.Empty(t, AggregateDistricts(nil))
}

func TestAggregateDistricts_EmptyStringDistrictIsUnknown(t *testing.T) {
	out := AggregateDistricts([]domain.Merged{{District: strp("")}})
	require.Len(t, out, 1)
	assert.Equal(t, domain.UnknownDistrict, out[0].Name)
}
