// Package logical implements the binary and string conversions for the
// supported Avro logical types.
//
// Each Codec converts between a native Go value and the intermediate value
// handed to the wire codec:
//
//	decimal (bytes)      decimal.Decimal <-> big-endian two's complement []byte
//	decimal (string)     decimal.Decimal <-> string
//	uuid                 string          <-> string (RFC 4122 validated)
//	date (int)           Date            <-> int days since 1970-01-01
//	date (string)        Date            <-> "2006-01-02"
//	datetime (string)    time.Time       <-> RFC 3339, offset preserved
//	time-millis/micros   time.Duration   <-> int / int64 since midnight
//	timestamp-*          time.Time       <-> int64 since the epoch
//
// Decoders never panic: an ill-typed or out-of-range intermediate value is
// reported as an *Error.
package logical
