package pgtype

// Element and array type OIDs from the PostgreSQL catalog.
const (
	OIDBool        uint32 = 16
	OIDBytea       uint32 = 17
	OIDChar        uint32 = 18
	OIDName        uint32 = 19
	OIDInt8        uint32 = 20
	OIDInt2        uint32 = 21
	OIDInt4        uint32 = 23
	OIDText        uint32 = 25
	OIDJSON        uint32 = 114
	OIDFloat4      uint32 = 700
	OIDFloat8      uint32 = 701
	OIDBPChar      uint32 = 1042
	OIDVarchar     uint32 = 1043
	OIDTimestamp   uint32 = 1114
	OIDTimestampTZ uint32 = 1184
	OIDUUID        uint32 = 2950

	OIDBoolArray        uint32 = 1000
	OIDByteaArray       uint32 = 1001
	OIDCharArray        uint32 = 1002
	OIDNameArray        uint32 = 1003
	OIDInt2Array        uint32 = 1005
	OIDInt4Array        uint32 = 1007
	OIDTextArray        uint32 = 1009
	OIDBPCharArray      uint32 = 1014
	OIDVarcharArray     uint32 = 1015
	OIDInt8Array        uint32 = 1016
	OIDFloat4Array      uint32 = 1021
	OIDFloat8Array      uint32 = 1022
	OIDTimestampArray   uint32 = 1115
	OIDTimestampTZArray uint32 = 1185
	OIDJSONArray        uint32 = 199
	OIDUUIDArray        uint32 = 2951
)

// ElemOIDFor maps an array type OID to the OID of its element type.
var ElemOIDFor = map[uint32]uint32{
	OIDBoolArray:        OIDBool,
	OIDByteaArray:       OIDBytea,
	OIDCharArray:        OIDChar,
	OIDNameArray:        OIDName,
	OIDInt2Array:        OIDInt2,
	OIDInt4Array:        OIDInt4,
	OIDTextArray:        OIDText,
	OIDBPCharArray:      OIDBPChar,
	OIDVarcharArray:     OIDVarchar,
	OIDInt8Array:        OIDInt8,
	OIDFloat4Array:      OIDFloat4,
	OIDFloat8Array:      OIDFloat8,
	OIDTimestampArray:   OIDTimestamp,
	OIDTimestampTZArray: OIDTimestampTZ,
	OIDJSONArray:        OIDJSON,
	OIDUUIDArray:        OIDUUID,
}
