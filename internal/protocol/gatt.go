package protocol

import "github.com/google/uuid"

// GATT profile of the vehicle. Commands are written to WriteCharacteristic
// and notifications arrive on ReadCharacteristic, one message per packet.
var (
	ServiceUUID         = uuid.MustParse("BE15BEEF-6186-407E-8381-0BD89C4D8DF4")
	ReadCharacteristic  = uuid.MustParse("BE15BEE0-6186-407E-8381-0BD89C4D8DF4")
	WriteCharacteristic = uuid.MustParse("BE15BEE1-6186-407E-8381-0BD89C4D8DF4")
)
