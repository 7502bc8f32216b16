// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFrameRoundTrip_PropertyPayloadLen is property 3: the parsed
// payload_len equals the number of bytes between offset 24 and the end of
// the buffer, and the header magic is 0xCCCC0001 big-endian.
func TestFrameRoundTrip_PropertyPayloadLen(t *testing.T) {
	body := []byte{0x11, 0xAA, 0xBB, 0xCC}
	raw := Encode(body, true)

	require.Equal(t, byte(0xCC), raw[0])
	require.Equal(t, byte(0xCC), raw[1])
	require.Equal(t, byte(0x00), raw[2])
	require.Equal(t, byte(0x01), raw[3])

	assert.Len(t, raw, headerLen+len(body))

	f, err := ReadFrame(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, body, f.Body)
	assert.True(t, f.IsPoll)
	assert.Equal(t, roleCommand, f.Role)
	assert.Equal(t, uint16(len(body)), f.Len2)
}

func TestEncode_NotIsPoll(t *testing.T) {
	raw := Encode([]byte{0x34}, false)
	f, err := ReadFrame(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.False(t, f.IsPoll)
}

// TestBuildParamReadRequest_S3 is scenario S3.
func TestBuildParamReadRequest_S3(t *testing.T) {
	body := BuildParamReadRequest([]ReadItem{
		{ID: 0x4787C, ExpectedLen: 4},
	}, 0x00025334)

	want := []byte{
		0x2e, 0x00,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x03,
		0x00, 0x04, 0x78, 0x7C,
		0x00, 0x00, 0x00, 0x04,
		0x00, 0x02, 0x53, 0x34,
	}
	assert.Equal(t, want, body)

	raw := Encode(body, true)
	assert.Equal(t, byte(0x23), raw[23])
	assert.True(t, binaryIsPollSet(raw))
}

func binaryIsPollSet(raw []byte) bool {
	return raw[16] == 0 && raw[17] == 0 && raw[18] == 0 && raw[19] == 1
}

// TestParseParamReadResponse_S4 is scenario S4.
func TestParseParamReadResponse_S4(t *testing.T) {
	body := []byte{
		0x00, 0x00, // status
		0x00, 0x00, 0x03, 0xE8, // timestamp = 1000ms
		0x01, 0x40, 0x49, 0x0F, 0xDB, // marker + 4 raw float bytes
	}
	resp, err := ParseParamReadResponse(body, []int{4})
	require.NoError(t, err)
	assert.Equal(t, uint32(1000), resp.TimestampMs)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, []byte{0x40, 0x49, 0x0F, 0xDB}, resp.Items[0])
}

func TestParseParamReadResponse_BadMarker(t *testing.T) {
	body := []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x00}
	_, err := ParseParamReadResponse(body, []int{4})
	assert.ErrorIs(t, err, ErrBadMarker)
}

func TestParseParamReadResponse_Truncated(t *testing.T) {
	body := []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00}
	_, err := ParseParamReadResponse(body, []int{4})
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestReadFrame_BadMagic(t *testing.T) {
	raw := make([]byte, headerLen)
	_, err := ReadFrame(bytes.NewReader(raw))
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestSdbVersionAndDownloadCommands(t *testing.T) {
	vq := BuildSdbVersionQuery()
	assert.Equal(t, byte(OpSdbVersionQuery), vq[0])
	assert.Equal(t, byte(0x0e), vq[3])

	begin := BuildSdbDownloadBegin()
	assert.Equal(t, byte(OpSdbDownloadBegin), begin[0])
	assert.Equal(t, vq[1:], begin[1:])
}

func TestParseSdbChunkResponse(t *testing.T) {
	body := []byte{0x00, 0x00, 0x00, 0x01, 0x00, 0x03, 0xAA, 0xBB, 0xCC}
	chunk, err := ParseSdbChunkResponse(body)
	require.NoError(t, err)
	assert.True(t, chunk.Continues)
	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC}, chunk.Data)

	last := []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x01}
	chunk2, err := ParseSdbChunkResponse(last)
	require.NoError(t, err)
	assert.False(t, chunk2.Continues)
}

func TestSendAck(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(ackExpectedReply)
	rw := &loopback{read: &buf, written: &bytes.Buffer{}}
	err := SendAck(rw)
	require.NoError(t, err)
	assert.Equal(t, ackRequest, rw.written.Bytes())
}

func TestSendAck_Mismatch(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(make([]byte, headerLen))
	rw := &loopback{read: &buf, written: &bytes.Buffer{}}
	err := SendAck(rw)
	assert.ErrorIs(t, err, ErrUnexpectedAck)
}

type loopback struct {
	read    *bytes.Buffer
	written *bytes.Buffer
}

func (l *loopback) Read(p []byte) (int, error)  { return l.read.Read(p) }
func (l *loopback) Write(p []byte) (int, error) { return l.written.Write(p) }
