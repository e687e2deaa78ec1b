package fst

import (
	"encoding/binary"

	"github.com/latticekv/fst/fsterr"
)

// magic identifies an FST image. It appears once at the start of the
// header and once again in the trailer so a reader can validate that it
// is looking at a complete, untruncated image without re-reading the
// header.
var magic = [4]byte{'F', 'S', 'T', '1'}

const (
	formatVersion = 1

	kindSet = 0
	kindMap = 1

	headerSize  = 4 + 1 + 1 + 2 + 8 // magic + version + kind + reserved + key count
	trailerSize = 8 + 4 + 1         // root offset + magic + version
)

type header struct {
	kind     byte
	keyCount uint64
}

func encodeHeader(h header) []byte {
	buf := make([]byte, headerSize)
	copy(buf[0:4], magic[:])
	buf[4] = formatVersion
	buf[5] = h.kind
	// buf[6:8] reserved, left zero
	binary.LittleEndian.PutUint64(buf[8:16], h.keyCount)
	return buf
}

func decodeHeader(data []byte) (header, error) {
	if len(data) < headerSize {
		return header{}, &fsterr.FormatError{Reason: "image too small for header"}
	}
	if string(data[0:4]) != string(magic[:]) {
		return header{}, &fsterr.FormatError{Reason: "bad magic"}
	}
	version := data[4]
	if version != formatVersion {
		return header{}, &fsterr.FormatError{Reason: "unsupported version"}
	}
	kind := data[5]
	if kind != kindSet && kind != kindMap {
		return header{}, &fsterr.FormatError{Reason: "unknown kind"}
	}
	return header{
		kind:     kind,
		keyCount: binary.LittleEndian.Uint64(data[8:16]),
	}, nil
}

type trailer struct {
	rootOffset uint64
}

func encodeTrailer(t trailer) []byte {
	buf := make([]byte, trailerSize)
	binary.LittleEndian.PutUint64(buf[0:8], t.rootOffset)
	copy(buf[8:12], magic[:])
	buf[12] = formatVersion
	return buf
}

func decodeTrailer(data []byte) (trailer, error) {
	if len(data) < headerSize+trailerSize {
		return trailer{}, &fsterr.FormatError{Reason: "image too small for trailer"}
	}
	t := data[len(data)-trailerSize:]
	if string(t[8:12]) != string(magic[:]) {
		return trailer{}, &fsterr.FormatError{Reason: "bad trailer magic"}
	}
	if t[12] != formatVersion {
		return trailer{}, &fsterr.FormatError{Reason: "bad trailer version"}
	}
	root := binary.LittleEndian.Uint64(t[0:8])
	bodyEnd := uint64(len(data) - trailerSize)
	if root >= bodyEnd || root < headerSize {
		return trailer{}, &fsterr.FormatError{Reason: "root offset outside body"}
	}
	return trailer{rootOffset: root}, nil
}
