// Package dumpcodec compresses a DrawOrderList.Dump() snapshot into a
// stable, compact string for golden tests, the same way the teacher's
// lib/urlenc package packs a D2 script for a URL: deflate with a shared
// dictionary, then base64.
package dumpcodec

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"io"
	"strings"

	"oss.terrastruct.com/util-go/xdefer"
)

// dictionary primes the deflate window with tokens that recur in every
// dump line, so small snapshots still compress well.
var dictionary = strings.Join([]string{
	"block_box", "line_box", "subtree=", "index=", "ifc=", "line=", "bbox=",
}, "")

// Encode compresses and base64-encodes a dump string.
func Encode(dump string) (_ string, err error) {
	defer xdefer.Errorf(&err, "dumpcodec: encode")

	var b bytes.Buffer
	zw, err := flate.NewWriterDict(&b, flate.DefaultCompression, []byte(dictionary))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(zw, strings.NewReader(dump)); err != nil {
		return "", err
	}
	if err := zw.Close(); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b.Bytes()), nil
}

// Decode reverses Encode.
func Decode(encoded string) (_ string, err error) {
	defer xdefer.Errorf(&err, "dumpcodec: decode")

	raw, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	zr := flate.NewReaderDict(bytes.NewReader(raw), []byte(dictionary))
	defer zr.Close()

	var b bytes.Buffer
	if _, err := io.Copy(&b, zr); err != nil {
		return "", err
	}
	return b.String(), nil
}
