package protocol

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"peuchre/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func card(s string) *domain.Card {
	c, err := domain.ParseCard(s)
	if err != nil {
		panic(err)
	}
	return &c
}

func suit(s domain.Suit) *domain.Suit { return &s }

func sampleState() State {
	var s State
	s.Players[0] = PlayerBlock{
		ConnectionState: domain.Joined,
		PlayerHandle:    0,
		Name:            "p0t1",
		ClientName:      "peuchre",
		Hardware:        "x86_64",
		OS:              "linux",
		Comment:         "",
		Team:            0,
		NumCards:        5,
		Creator:         true,
		Dealer:          true,
		PlayOffer:       true,
	}
	s.Players[1] = PlayerBlock{
		ConnectionState: domain.Joined,
		PlayerHandle:    1,
		Name:            "p1t2",
		Team:            1,
		NumCards:        4,
		Leader:          true,
		Maker:           true,
		Ordered:         true,
		CardInPlay:      card("Jd"),
		Passed:          true,
	}
	s.Players[2] = PlayerBlock{ConnectionState: domain.Connected}
	s.Players[3] = PlayerBlock{ConnectionState: domain.Unconnected}
	s.Game = GameBlock{
		InGame:             true,
		HandState:          domain.HandPlay,
		Hole:               card("9s"),
		Trump:              suit(domain.Hearts),
		Tricks:             [2]int32{1, 2},
		Score:              [2]int32{4, 7},
		CanDefendAlone:     true,
		MustGoAloneOnOrder: false,
		ScrewTheDealer:     true,
	}
	s.Hand = domain.MustParseHand("9h Jc As Tc Kd")
	return s
}

func TestRoundTrip(t *testing.T) {
	long := strings.Repeat("x", 4096)
	messages := []Message{
		Join{Version: ProtocolVersion, Name: "p0t1"},
		Join{Version: ProtocolVersion, Name: ""},
		Join{Version: ProtocolVersion, Name: long},
		JoinAccept{GameHandle: 3, PlayerHandle: 2, Team: 1},
		Text{ID: JOINDENY, Text: "game full"},
		Text{ID: DECLINE, Text: ""},
		Text{ID: CHAT, Text: long},
		Text{ID: PLAYDENY, Text: "must follow suit"},
		Command{ID: START, GameHandle: 1, PlayerHandle: 0},
		Command{ID: ORDERALONE, GameHandle: 1, PlayerHandle: 3},
		Command{ID: DEFENDPASS, GameHandle: 1, PlayerHandle: 2},
		Call{ID: CALL, GameHandle: 1, PlayerHandle: 1, Suit: domain.Spades},
		CardCommand{ID: PLAY, GameHandle: 1, PlayerHandle: 1, Card: *card("Ah")},
		CardCommand{ID: DROP, GameHandle: 1, PlayerHandle: 0, Card: *card("9c")},
		Offer{ID: ORDEROFFER, PlayerHandle: 2},
		Offer{ID: CALLOFFER, PlayerHandle: 0},
		Notice{ID: TRICKOVER},
		Notice{ID: GAMEOVER},
		Notice{ID: DEAL},
		Opaque{ID: KICK, Body: []byte{0, 0, 0, 1}},
		sampleState(),
	}
	for _, m := range messages {
		t.Run(m.Type().String(), func(t *testing.T) {
			frame, err := Encode(m)
			require.NoError(t, err)

			got, err := Decode(frame[4:])
			require.NoError(t, err)
			assert.Equal(t, m, got)
		})
	}
}

func TestEncodeLengthField(t *testing.T) {
	for _, m := range []Message{Notice{ID: HANDOVER}, Join{Version: 1, Name: "abc"}, sampleState()} {
		frame, err := Encode(m)
		require.NoError(t, err)
		n := binary.BigEndian.Uint32(frame)
		assert.Equal(t, uint32(len(frame)-4), n, "%v length field", m.Type())
		assert.Equal(t, []byte{TAIL1, TAIL2}, frame[len(frame)-2:])
	}
}

func TestJoinLayout(t *testing.T) {
	frame, err := Encode(Join{Version: ProtocolVersion, Name: "ab"})
	require.NoError(t, err)
	want := []byte{
		0, 0, 0, 16, // length: id + version + strlen + 2 bytes + tail
		0, 1, 0xe2, 0x09, // 123401
		0, 0, 0, 1,
		0, 0, 0, 2, 'a', 'b',
		250, 222,
	}
	assert.Equal(t, want, frame)
}

func TestDecodeRejectsBadTail(t *testing.T) {
	frame, err := Encode(Offer{ID: PLAYOFFER, PlayerHandle: 1})
	require.NoError(t, err)

	for _, i := range []int{len(frame) - 2, len(frame) - 1} {
		corrupt := append([]byte{}, frame[4:]...)
		corrupt[i-4] ^= 0xff
		_, err := Decode(corrupt)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformed))

		var mm *MalformedMessage
		require.True(t, errors.As(err, &mm))
		assert.Equal(t, PLAYOFFER, mm.ID)
	}
}

func TestDecodeTruncatedString(t *testing.T) {
	frame, err := Encode(Text{ID: CHAT, Text: "hello"})
	require.NoError(t, err)
	body := append([]byte{}, frame[4:]...)
	// claim a longer string than the frame holds
	binary.BigEndian.PutUint32(body[4:], 99)

	_, err = Decode(body)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDecodeTrailingBytes(t *testing.T) {
	frame, err := Encode(Offer{ID: DROPOFFER, PlayerHandle: 1})
	require.NoError(t, err)
	body := append([]byte{}, frame[4:len(frame)-2]...)
	body = append(body, 0, 0, 0, 9, TAIL1, TAIL2)

	_, err = Decode(body)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDecodeUnrecognized(t *testing.T) {
	body := []byte{0, 0, 0, 42, 1, 2, 3, TAIL1, TAIL2}
	m, err := Decode(body)
	require.NoError(t, err)

	u, ok := m.(Unrecognized)
	require.True(t, ok, "got %T", m)
	assert.Equal(t, MessageID(42), u.ID)
	assert.Equal(t, body, u.Raw)

	frame, err := Encode(u)
	require.NoError(t, err)
	assert.Equal(t, body, frame[4:])
}

func TestEncodeRejectsMismatchedID(t *testing.T) {
	_, err := Encode(Offer{ID: PLAY, PlayerHandle: 1})
	assert.ErrorIs(t, err, ErrUnencodable)

	_, err = Encode(Text{ID: STATE, Text: "x"})
	assert.ErrorIs(t, err, ErrUnencodable)
}

func TestReadFrame(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMessage(&buf, Notice{ID: DEAL}))
	require.NoError(t, WriteMessage(&buf, Offer{ID: ORDEROFFER, PlayerHandle: 3}))

	f1, err := ReadFrame(&buf)
	require.NoError(t, err)
	m1, err := Decode(f1)
	require.NoError(t, err)
	assert.Equal(t, Notice{ID: DEAL}, m1)

	f2, err := ReadFrame(&buf)
	require.NoError(t, err)
	m2, err := Decode(f2)
	require.NoError(t, err)
	assert.Equal(t, Offer{ID: ORDEROFFER, PlayerHandle: 3}, m2)

	_, err = ReadFrame(bytes.NewReader([]byte{0, 0, 0, 2, 1, 2}))
	assert.ErrorIs(t, err, ErrFrameTooShort)

	_, err = ReadFrame(bytes.NewReader([]byte{0x7f, 0, 0, 0}))
	assert.ErrorIs(t, err, ErrFrameTooLarge)
}

func TestMessageIDs(t *testing.T) {
	tests := []struct {
		id   MessageID
		want int32
		name string
	}{
		{JOIN, 123401, "JOIN"},
		{STATE, 123412, "STATE"},
		{START, 123417, "START"},
		{ORDER, 123421, "ORDER"},
		{CALL, 123427, "CALL"},
		{PLAY, 123434, "PLAY"},
		{GAMEOVER, 123438, "GAMEOVER"},
		{CALLOFFER, 123441, "CALLOFFER"},
		{DEAL, 123444, "DEAL"},
	}
	for _, tt := range tests {
		if int32(tt.id) != tt.want {
			t.Fatalf("%s = %d, want %d", tt.name, int32(tt.id), tt.want)
		}
		if tt.id.String() != tt.name {
			t.Fatalf("String() = %q, want %q", tt.id.String(), tt.name)
		}
	}
	if MessageID(5).Known() {
		t.Fatalf("MessageID(5).Known() = true")
	}
}
