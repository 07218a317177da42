package pgtype

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// pgEpoch is the zero point of the binary timestamp encoding.
var (
	pgEpoch     = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	pgEpochUnix = pgEpoch.Unix()
)

const (
	timestampLayout   = "2006-01-02 15:04:05.999999"
	timestampTZLayout = "2006-01-02 15:04:05.999999-07"
)

func putInt16(buf *bytes.Buffer, v int16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(v))
	buf.Write(b[:])
}

func putInt32(buf *bytes.Buffer, v int32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	buf.Write(b[:])
}

func putInt64(buf *bytes.Buffer, v int64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	buf.Write(b[:])
}

func fixedLen(name string, raw []byte, want int) error {
	if len(raw) != want {
		return fmt.Errorf("%s: expected %d bytes, got %d", name, want, len(raw))
	}
	return nil
}

// Bool carries BOOL values, rendered t/f in text form.
var Bool = Codec[bool]{
	Name:     "bool",
	OID:      OIDBool,
	ArrayOID: OIDBoolArray,
	Format: func(v bool) string {
		if v {
			return "t"
		}
		return "f"
	},
	Parse: func(s string) (bool, error) {
		switch strings.ToLower(s) {
		case "t", "true":
			return true, nil
		case "f", "false":
			return false, nil
		}
		return false, fmt.Errorf("bool: invalid value %q", s)
	},
	Encode: func(v bool, buf *bytes.Buffer) error {
		if v {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
		return nil
	},
	Decode: func(raw []byte) (bool, error) {
		if err := fixedLen("bool", raw, 1); err != nil {
			return false, err
		}
		return raw[0] != 0, nil
	},
}

// Bytea carries BYTEA values, rendered in \x hex form in text.
var Bytea = Codec[[]byte]{
	Name:     "bytea",
	OID:      OIDBytea,
	ArrayOID: OIDByteaArray,
	Format: func(v []byte) string {
		return `\x` + hex.EncodeToString(v)
	},
	Parse: func(s string) ([]byte, error) {
		if !strings.HasPrefix(s, `\x`) {
			return nil, fmt.Errorf("bytea: missing \\x prefix in %q", s)
		}
		b, err := hex.DecodeString(s[2:])
		if err != nil {
			return nil, fmt.Errorf("bytea: %w", err)
		}
		return b, nil
	},
	Encode: func(v []byte, buf *bytes.Buffer) error {
		buf.Write(v)
		return nil
	},
	Decode: func(raw []byte) ([]byte, error) {
		return append([]byte(nil), raw...), nil
	},
}

// Char carries "char" values, a single byte.
var Char = Codec[byte]{
	Name:     "char",
	OID:      OIDChar,
	ArrayOID: OIDCharArray,
	Format: func(v byte) string {
		return string([]byte{v})
	},
	Parse: func(s string) (byte, error) {
		if len(s) != 1 {
			return 0, fmt.Errorf("char: expected a single byte, got %q", s)
		}
		return s[0], nil
	},
	Encode: func(v byte, buf *bytes.Buffer) error {
		buf.WriteByte(v)
		return nil
	},
	Decode: func(raw []byte) (byte, error) {
		if err := fixedLen("char", raw, 1); err != nil {
			return 0, err
		}
		return raw[0], nil
	},
}

func stringCodec(name string, oid, arrayOID uint32) Codec[string] {
	return Codec[string]{
		Name:     name,
		OID:      oid,
		ArrayOID: arrayOID,
		Format:   func(v string) string { return v },
		Parse:    func(s string) (string, error) { return s, nil },
		Encode: func(v string, buf *bytes.Buffer) error {
			buf.WriteString(v)
			return nil
		},
		Decode: func(raw []byte) (string, error) {
			return string(raw), nil
		},
	}
}

// Text, Varchar, BPChar, and Name carry the TEXT family as raw strings.
var (
	Text    = stringCodec("text", OIDText, OIDTextArray)
	Varchar = stringCodec("varchar", OIDVarchar, OIDVarcharArray)
	BPChar  = stringCodec("bpchar", OIDBPChar, OIDBPCharArray)
	Name    = stringCodec("name", OIDName, OIDNameArray)
)

// Int2 carries INT2 values.
var Int2 = Codec[int16]{
	Name:     "int2",
	OID:      OIDInt2,
	ArrayOID: OIDInt2Array,
	Format:   func(v int16) string { return strconv.FormatInt(int64(v), 10) },
	Parse: func(s string) (int16, error) {
		n, err := strconv.ParseInt(s, 10, 16)
		if err != nil {
			return 0, fmt.Errorf("int2: %w", err)
		}
		return int16(n), nil
	},
	Encode: func(v int16, buf *bytes.Buffer) error {
		putInt16(buf, v)
		return nil
	},
	Decode: func(raw []byte) (int16, error) {
		if err := fixedLen("int2", raw, 2); err != nil {
			return 0, err
		}
		return int16(binary.BigEndian.Uint16(raw)), nil
	},
}

// Int4 carries INT4 values.
var Int4 = Codec[int32]{
	Name:     "int4",
	OID:      OIDInt4,
	ArrayOID: OIDInt4Array,
	Format:   func(v int32) string { return strconv.FormatInt(int64(v), 10) },
	Parse: func(s string) (int32, error) {
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("int4: %w", err)
		}
		return int32(n), nil
	},
	Encode: func(v int32, buf *bytes.Buffer) error {
		putInt32(buf, v)
		return nil
	},
	Decode: func(raw []byte) (int32, error) {
		if err := fixedLen("int4", raw, 4); err != nil {
			return 0, err
		}
		return int32(binary.BigEndian.Uint32(raw)), nil
	},
}

// Int8 carries INT8 values.
var Int8 = Codec[int64]{
	Name:     "int8",
	OID:      OIDInt8,
	ArrayOID: OIDInt8Array,
	Format:   func(v int64) string { return strconv.FormatInt(v, 10) },
	Parse: func(s string) (int64, error) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("int8: %w", err)
		}
		return n, nil
	},
	Encode: func(v int64, buf *bytes.Buffer) error {
		putInt64(buf, v)
		return nil
	},
	Decode: func(raw []byte) (int64, error) {
		if err := fixedLen("int8", raw, 8); err != nil {
			return 0, err
		}
		return int64(binary.BigEndian.Uint64(raw)), nil
	},
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'g', -1, bits)
}

// Float4 carries FLOAT4 values.
var Float4 = Codec[float32]{
	Name:     "float4",
	OID:      OIDFloat4,
	ArrayOID: OIDFloat4Array,
	Format:   func(v float32) string { return formatFloat(float64(v), 32) },
	Parse: func(s string) (float32, error) {
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return 0, fmt.Errorf("float4: %w", err)
		}
		return float32(f), nil
	},
	Encode: func(v float32, buf *bytes.Buffer) error {
		putInt32(buf, int32(math.Float32bits(v)))
		return nil
	},
	Decode: func(raw []byte) (float32, error) {
		if err := fixedLen("float4", raw, 4); err != nil {
			return 0, err
		}
		return math.Float32frombits(binary.BigEndian.Uint32(raw)), nil
	},
}

// Float8 carries FLOAT8 values.
var Float8 = Codec[float64]{
	Name:     "float8",
	OID:      OIDFloat8,
	ArrayOID: OIDFloat8Array,
	Format:   func(v float64) string { return formatFloat(v, 64) },
	Parse: func(s string) (float64, error) {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("float8: %w", err)
		}
		return f, nil
	},
	Encode: func(v float64, buf *bytes.Buffer) error {
		putInt64(buf, int64(math.Float64bits(v)))
		return nil
	},
	Decode: func(raw []byte) (float64, error) {
		if err := fixedLen("float8", raw, 8); err != nil {
			return 0, err
		}
		return math.Float64frombits(binary.BigEndian.Uint64(raw)), nil
	},
}

// JSON carries JSON values as raw message bytes. Payloads are checked for
// well-formedness in both directions.
var JSON = Codec[json.RawMessage]{
	Name:     "json",
	OID:      OIDJSON,
	ArrayOID: OIDJSONArray,
	Format:   func(v json.RawMessage) string { return string(v) },
	Parse: func(s string) (json.RawMessage, error) {
		if !gjson.Valid(s) {
			return nil, fmt.Errorf("json: invalid payload %q", s)
		}
		return json.RawMessage(s), nil
	},
	Encode: func(v json.RawMessage, buf *bytes.Buffer) error {
		if !gjson.ValidBytes(v) {
			return fmt.Errorf("json: invalid payload %q", v)
		}
		buf.Write(v)
		return nil
	},
	Decode: func(raw []byte) (json.RawMessage, error) {
		if !gjson.ValidBytes(raw) {
			return nil, fmt.Errorf("json: invalid payload %q", raw)
		}
		return json.RawMessage(append([]byte(nil), raw...)), nil
	},
}

func timestampCodec(name string, oid, arrayOID uint32, layout string, fallbacks ...string) Codec[time.Time] {
	return Codec[time.Time]{
		Name:     name,
		OID:      oid,
		ArrayOID: arrayOID,
		Format: func(v time.Time) string {
			return v.UTC().Format(layout)
		},
		Parse: func(s string) (time.Time, error) {
			t, err := time.Parse(layout, s)
			for _, l := range fallbacks {
				if err == nil {
					break
				}
				t, err = time.Parse(l, s)
			}
			if err != nil {
				return time.Time{}, fmt.Errorf("%s: %w", name, err)
			}
			return t, nil
		},
		Encode: func(v time.Time, buf *bytes.Buffer) error {
			// Seconds-based arithmetic; a Duration would saturate ~292
			// years from the epoch.
			micros := (v.Unix()-pgEpochUnix)*1_000_000 + int64(v.Nanosecond())/1_000
			putInt64(buf, micros)
			return nil
		},
		Decode: func(raw []byte) (time.Time, error) {
			if err := fixedLen(name, raw, 8); err != nil {
				return time.Time{}, err
			}
			micros := int64(binary.BigEndian.Uint64(raw))
			sec, rem := micros/1_000_000, micros%1_000_000
			if rem < 0 {
				sec--
				rem += 1_000_000
			}
			return time.Unix(pgEpochUnix+sec, rem*1_000).UTC(), nil
		},
	}
}

// Timestamp and TimestampTZ carry the timestamp types. The binary form is
// microseconds since 2000-01-01 00:00:00 UTC; infinity values are not
// supported.
var (
	Timestamp   = timestampCodec("timestamp", OIDTimestamp, OIDTimestampArray, timestampLayout)
	TimestampTZ = timestampCodec("timestamptz", OIDTimestampTZ, OIDTimestampTZArray,
		timestampTZLayout, "2006-01-02 15:04:05.999999-07:00", timestampLayout)
)

// UUID carries UUID values.
var UUID = Codec[uuid.UUID]{
	Name:     "uuid",
	OID:      OIDUUID,
	ArrayOID: OIDUUIDArray,
	Format:   func(v uuid.UUID) string { return v.String() },
	Parse: func(s string) (uuid.UUID, error) {
		u, err := uuid.Parse(s)
		if err != nil {
			return uuid.UUID{}, fmt.Errorf("uuid: %w", err)
		}
		return u, nil
	},
	Encode: func(v uuid.UUID, buf *bytes.Buffer) error {
		buf.Write(v[:])
		return nil
	},
	Decode: func(raw []byte) (uuid.UUID, error) {
		u, err := uuid.FromBytes(raw)
		if err != nil {
			return uuid.UUID{}, fmt.Errorf("uuid: %w", err)
		}
		return u, nil
	},
}
