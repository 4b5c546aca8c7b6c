package carris

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The upstream API is loose about types: coordinates and speeds arrive as
// numbers or strings depending on the record
func TestStopDecodingToleratesStringCoordinates(t *testing.T) {
	payload := `[
		{"id":"S1","name":"Alameda","lat":38.70,"lon":-9.13,"lines":["1512"]},
		{"id":"S2","name":"Saldanha","lat":"38.735","lon":"-9.145","lines":["2704"]},
		{"id":"S3","name":"Broken","lat":"not a number","lon":-9.1,"lines":[]},
		{"id":"S4","name":"Missing"}
	]`

	var records []apiStop
	require.NoError(t, json.Unmarshal([]byte(payload), &records))
	require.Len(t, records, 4)

	stop, ok := records[0].asStop()
	require.True(t, ok)
	assert.Equal(t, 38.70, stop.Location.Latitude)

	stop, ok = records[1].asStop()
	require.True(t, ok)
	assert.Equal(t, 38.735, stop.Location.Latitude)
	assert.Equal(t, -9.145, stop.Location.Longitude)

	_, ok = records[2].asStop()
	assert.False(t, ok, "unparsable coordinates exclude the stop")

	_, ok = records[3].asStop()
	assert.False(t, ok, "missing coordinates exclude the stop")
}

func TestVehicleDecodingDefaults(t *testing.T) {
	payload := `[
		{"id":"V1","lat":38.71,"lon":-9.14,"speed":"45","trip_id":"1512_0_1","pattern_id":"1512_0","route_id":"1512"},
		{"id":"V2","route_id":"2704"}
	]`

	var records []apiVehicle
	require.NoError(t, json.Unmarshal([]byte(payload), &records))
	require.Len(t, records, 2)

	vehicle := records[0].asVehicle()
	require.NotNil(t, vehicle.Location)
	assert.Equal(t, 38.71, vehicle.Location.Latitude)
	assert.Equal(t, 45.0, vehicle.Speed)
	assert.Equal(t, "1512", vehicle.RouteID)

	vehicle = records[1].asVehicle()
	assert.Nil(t, vehicle.Location, "absent coordinates stay nil for the matcher to default")
	assert.Zero(t, vehicle.Speed)
}
