package featurestore

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/hupe1980/parclust/codec"
)

// Envelope layout:
//
//	[0:4]  magic "PCFS"
//	[4]    format version
//	[5]    compression
//	[6]    codec name length
//	[7:7+n] codec name
//	rest   payload (compressed codec bytes)

const envelopeVersion = 1

var envelopeMagic = [4]byte{'P', 'C', 'F', 'S'}

var (
	// ErrInvalidEnvelope is returned when a blob does not start with a
	// valid envelope header.
	ErrInvalidEnvelope = errors.New("featurestore: invalid envelope")

	// ErrUnknownCodec is returned when a blob was written with a codec
	// this build does not know.
	ErrUnknownCodec = errors.New("featurestore: unknown codec")

	// ErrUnknownCompression is returned for unrecognized compression bytes.
	ErrUnknownCompression = errors.New("featurestore: unknown compression")
)

func encodeEnvelope(c codec.Codec, comp Compression, v any) ([]byte, error) {
	payload, err := c.Marshal(v)
	if err != nil {
		return nil, err
	}

	payload, err = compress(comp, payload)
	if err != nil {
		return nil, err
	}

	name := c.Name()
	if len(name) > 255 {
		return nil, fmt.Errorf("%w: codec name too long", ErrInvalidEnvelope)
	}

	buf := make([]byte, 0, 7+len(name)+len(payload))
	buf = append(buf, envelopeMagic[:]...)
	buf = append(buf, envelopeVersion, byte(comp), byte(len(name)))
	buf = append(buf, name...)
	buf = append(buf, payload...)

	return buf, nil
}

func decodeEnvelope(data []byte, v any) error {
	if len(data) < 7 || !bytes.Equal(data[:4], envelopeMagic[:]) {
		return ErrInvalidEnvelope
	}

	if version := data[4]; version != envelopeVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidEnvelope, version)
	}

	comp := Compression(data[5])
	nameLen := int(data[6])

	if len(data) < 7+nameLen {
		return ErrInvalidEnvelope
	}

	name := string(data[7 : 7+nameLen])

	c, ok := codec.ByName(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}

	payload, err := decompress(comp, data[7+nameLen:])
	if err != nil {
		return err
	}

	return c.Unmarshal(payload, v)
}
