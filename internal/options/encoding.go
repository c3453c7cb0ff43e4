package options

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when the fingerprint payload changes
const fingerprintSchema uint16 = 1

type wireOptions struct {
	Schema   uint16 `msgpack:"schema"`
	Target   string `msgpack:"target"`
	Silent   bool   `msgpack:"silent"`
	LogError bool   `msgpack:"logError"`
	Optimize bool   `msgpack:"optimize"`
	LongPtr  bool   `msgpack:"longPtr"`
}

// Fingerprint returns a stable hex digest of o, suitable as a cache key for
// artifacts built with this bundle.
func (o Options) Fingerprint() (string, error) {
	if !o.Valid() {
		return "", fmt.Errorf("fingerprint of unconstructed options")
	}
	payload := wireOptions{
		Schema:   fingerprintSchema,
		Target:   o.target.String(),
		Silent:   o.silent,
		LogError: o.logError,
		Optimize: o.optimize,
		LongPtr:  o.longPtr,
	}
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := enc.Encode(&payload); err != nil {
		return "", err
	}
	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:]), nil
}

// MarshalJSON writes every field under its canonical name.
func (o Options) MarshalJSON() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("marshal of unconstructed options")
	}
	// field order follows the table, so build the object by hand
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range Fields() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.String())
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(o.Get(f))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a possibly partial object; missing fields take their
// default values. o is left untouched on error and on null.
func (o *Options) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded, err := FromMap(Default(), raw)
	if err != nil {
		return err
	}
	*o = decoded
	return nil
}
