package geosuggest

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"io"
	"os"
)

// Storage implements spec §4.4: a 4-byte big-endian length prefix, a
// metadata block, then the index payload to end-of-stream. The payload
// format the spec asks for is a self-describing zero-copy archive; no such
// library appears anywhere in the example pack, so this build falls back
// to the length-prefixed manual codec the spec explicitly allows in §9
// ("a length-prefixed manual codec is acceptable"), using encoding/gob for
// both regions — the same codec the teacher uses for its on-disk cache in
// andreiashu-geobed/geobed.go (store/loadGeobedCityData/loadNameIndex).

// Dump writes the length prefix, metadata, then the index payload.
func Dump(w io.Writer, metadata EngineMetadata, data *IndexData) error {
	var metaBuf bytes.Buffer
	if err := gob.NewEncoder(&metaBuf).Encode(metadata); err != nil {
		return newCodecError("encode metadata", err)
	}

	var lenPrefix [4]byte
	binary.BigEndian.PutUint32(lenPrefix[:], uint32(metaBuf.Len()))
	if _, err := w.Write(lenPrefix[:]); err != nil {
		return newCodecError("write length prefix", err)
	}
	if _, err := w.Write(metaBuf.Bytes()); err != nil {
		return newCodecError("write metadata", err)
	}
	if err := gob.NewEncoder(w).Encode(data); err != nil {
		return newCodecError("encode payload", err)
	}
	return nil
}

// Load reads the length prefix, metadata block, and payload, reconstructing
// the k-d tree over the loaded city table.
func Load(r io.Reader) (*Engine, EngineMetadata, error) {
	data, metadata, err := loadIndexData(r)
	if err != nil {
		return nil, EngineMetadata{}, err
	}
	return NewEngine(data), metadata, nil
}

func loadIndexData(r io.Reader) (*IndexData, EngineMetadata, error) {
	var lenPrefix [4]byte
	if _, err := io.ReadFull(r, lenPrefix[:]); err != nil {
		return nil, EngineMetadata{}, newCodecError("read length prefix", err)
	}
	m := binary.BigEndian.Uint32(lenPrefix[:])

	var metadata EngineMetadata
	if m > 0 {
		metaBytes := make([]byte, m)
		if _, err := io.ReadFull(r, metaBytes); err != nil {
			return nil, EngineMetadata{}, newCodecError("read metadata", err)
		}
		if err := gob.NewDecoder(bytes.NewReader(metaBytes)).Decode(&metadata); err != nil {
			return nil, EngineMetadata{}, newCodecError("decode metadata", err)
		}
	}

	var data IndexData
	if err := gob.NewDecoder(r).Decode(&data); err != nil {
		return nil, EngineMetadata{}, newCodecError("decode payload", err)
	}
	return &data, metadata, nil
}

// ReadMetadata decodes only the metadata block, returning nil when the
// length prefix is zero (spec §4.4).
func ReadMetadata(path string) (*EngineMetadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newCodecError("open", err)
	}
	defer f.Close()

	var lenPrefix [4]byte
	if _, err := io.ReadFull(f, lenPrefix[:]); err != nil {
		return nil, newCodecError("read length prefix", err)
	}
	m := binary.BigEndian.Uint32(lenPrefix[:])
	if m == 0 {
		return nil, nil
	}

	metaBytes := make([]byte, m)
	if _, err := io.ReadFull(f, metaBytes); err != nil {
		return nil, newCodecError("read metadata", err)
	}
	var metadata EngineMetadata
	if err := gob.NewDecoder(bytes.NewReader(metaBytes)).Decode(&metadata); err != nil {
		return nil, newCodecError("decode metadata", err)
	}
	return &metadata, nil
}

// DumpTo truncate-creates path and dumps into it.
func DumpTo(path string, metadata EngineMetadata, data *IndexData) error {
	f, err := os.Create(path)
	if err != nil {
		return newCodecError("create", err)
	}
	defer f.Close()
	return Dump(f, metadata, data)
}

// LoadFrom opens path read-only and loads it.
func LoadFrom(path string) (*Engine, EngineMetadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, EngineMetadata{}, newCodecError("open", err)
	}
	defer f.Close()
	return Load(f)
}
