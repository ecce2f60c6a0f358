package protocol

import "fmt"

// MessageID identifies a message on the wire.
type MessageID int32

// Message ids form a contiguous block starting at 123401. The order below is
// fixed by the server and must not change.
const (
	JOIN MessageID = 123401 + iota
	JOINDENY
	JOINACCEPT
	SERVERQUIT
	CLIENTQUIT
	DECLINE
	KICK
	ID
	IDACCEPT
	IDDENY
	CHAT
	STATE
	KICKPLAYER
	KICKDENY
	OPTIONS
	OPTIONSDENY
	START
	STARTDENY
	END
	ENDDENY
	ORDER
	ORDERALONE
	ORDERPASS
	ORDERDENY
	DROP
	DROPDENY
	CALL
	CALLALONE
	CALLPASS
	CALLDENY
	DEFEND
	DEFENDPASS
	DEFENDDENY
	PLAY
	PLAYDENY
	TRICKOVER
	HANDOVER
	GAMEOVER
	PLAYOFFER
	DEFENDOFFER
	CALLOFFER
	ORDEROFFER
	DROPOFFER
	DEAL
)

// Trailer bytes closing every message.
const (
	TAIL1 byte = 250
	TAIL2 byte = 222
)

// ProtocolVersion is sent in JOIN.
const ProtocolVersion int32 = 1

var messageNames = [...]string{
	"JOIN", "JOINDENY", "JOINACCEPT", "SERVERQUIT", "CLIENTQUIT", "DECLINE", "KICK",
	"ID", "IDACCEPT", "IDDENY", "CHAT", "STATE", "KICKPLAYER", "KICKDENY", "OPTIONS",
	"OPTIONSDENY", "START", "STARTDENY", "END", "ENDDENY", "ORDER", "ORDERALONE",
	"ORDERPASS", "ORDERDENY", "DROP", "DROPDENY", "CALL", "CALLALONE", "CALLPASS",
	"CALLDENY", "DEFEND", "DEFENDPASS", "DEFENDDENY", "PLAY", "PLAYDENY", "TRICKOVER",
	"HANDOVER", "GAMEOVER", "PLAYOFFER", "DEFENDOFFER", "CALLOFFER", "ORDEROFFER",
	"DROPOFFER", "DEAL",
}

// Known reports whether id is part of the catalog.
func (id MessageID) Known() bool {
	return id >= JOIN && id <= DEAL
}

func (id MessageID) String() string {
	if !id.Known() {
		return fmt.Sprintf("UNKNOWN(%d)", int32(id))
	}
	return messageNames[id-JOIN]
}

// IsDeny reports whether id is one of the *DENY messages.
func (id MessageID) IsDeny() bool {
	switch id {
	case JOINDENY, IDDENY, KICKDENY, OPTIONSDENY, STARTDENY, ENDDENY,
		ORDERDENY, DROPDENY, CALLDENY, DEFENDDENY, PLAYDENY:
		return true
	}
	return false
}

// kindOf maps each catalog id to its payload layout.
func kindOf(id MessageID) kind {
	switch id {
	case JOIN:
		return kindJoin
	case JOINACCEPT:
		return kindJoinAccept
	case JOINDENY, DECLINE, CHAT, IDDENY, KICKDENY, OPTIONSDENY, STARTDENY, ENDDENY,
		ORDERDENY, DROPDENY, CALLDENY, DEFENDDENY, PLAYDENY:
		return kindText
	case START, ORDER, ORDERALONE, ORDERPASS, CALLPASS, DEFEND, DEFENDPASS:
		return kindCommand
	case CALL, CALLALONE:
		return kindCall
	case DROP, PLAY:
		return kindCard
	case PLAYOFFER, DEFENDOFFER, CALLOFFER, ORDEROFFER, DROPOFFER:
		return kindOffer
	case TRICKOVER, HANDOVER, GAMEOVER, DEAL:
		return kindNotice
	case STATE:
		return kindState
	case SERVERQUIT, CLIENTQUIT, KICK, ID, IDACCEPT, KICKPLAYER, OPTIONS, END:
		return kindOpaque
	}
	return kindUnknown
}

type kind int

const (
	kindUnknown kind = iota
	kindJoin
	kindJoinAccept
	kindText
	kindCommand
	kindCall
	kindCard
	kindOffer
	kindNotice
	kindState
	kindOpaque
)
