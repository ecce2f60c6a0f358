package protocol

import "peuchre/internal/domain"

// Message is a decoded protocol message. The set of implementations is
// closed: Join, JoinAccept, Text, Command, Call, CardCommand, Offer, Notice,
// State, Opaque and Unrecognized.
type Message interface {
	Type() MessageID
	isMessage()
}

// Join asks the server for a seat.
type Join struct {
	Version int32
	Name    string
}

// JoinAccept assigns the joining client its handles and team.
type JoinAccept struct {
	GameHandle   int32
	PlayerHandle int32
	Team         int32
}

// Text carries a single string: JOINDENY, DECLINE, CHAT and the *DENY family.
type Text struct {
	ID   MessageID
	Text string
}

// Command is a bare client command addressed by game and player handle.
type Command struct {
	ID           MessageID
	GameHandle   int32
	PlayerHandle int32
}

// Call names a trump suit (CALL, CALLALONE).
type Call struct {
	ID           MessageID
	GameHandle   int32
	PlayerHandle int32
	Suit         domain.Suit
}

// CardCommand carries one card (DROP, PLAY).
type CardCommand struct {
	ID           MessageID
	GameHandle   int32
	PlayerHandle int32
	Card         domain.Card
}

// Offer tells every client which player is being offered a choice.
type Offer struct {
	ID           MessageID
	PlayerHandle int32
}

// Notice is a payload-free announcement: TRICKOVER, HANDOVER, GAMEOVER, DEAL.
type Notice struct {
	ID MessageID
}

// Opaque is a catalog message whose body the client does not interpret.
type Opaque struct {
	ID   MessageID
	Body []byte
}

// Unrecognized is any message whose id is outside the catalog. Raw holds the
// frame as received, without the length prefix.
type Unrecognized struct {
	ID  MessageID
	Raw []byte
}

// PlayerBlock is one of the four per-seat blocks of a STATE message. Every
// field after ConnectionState is only present on the wire when the player
// has joined.
type PlayerBlock struct {
	ConnectionState domain.ConnState
	PlayerHandle    int32
	Name            string
	ClientName      string
	Hardware        string
	OS              string
	Comment         string
	Team            int32
	NumCards        int32
	Creator         bool
	Ordered         bool
	Dealer          bool
	Alone           bool
	Defend          bool
	Leader          bool
	Maker           bool
	PlayOffer       bool
	OrderOffer      bool
	DropOffer       bool
	CallOffer       bool
	DefendOffer     bool
	CardInPlay      *domain.Card
	Passed          bool
}

// GameBlock is the game section of a STATE message.
type GameBlock struct {
	InGame             bool
	HandState          domain.HandState
	Suspended          bool
	Hole               *domain.Card
	Trump              *domain.Suit
	Tricks             [2]int32
	Score              [2]int32
	CanDefendAlone     bool
	MustGoAloneOnOrder bool
	ScrewTheDealer     bool
}

// State is a complete snapshot of the game as seen by the receiving client.
type State struct {
	Players [4]PlayerBlock
	Game    GameBlock
	Hand    []domain.Card
}

func (Join) Type() MessageID           { return JOIN }
func (JoinAccept) Type() MessageID     { return JOINACCEPT }
func (m Text) Type() MessageID         { return m.ID }
func (m Command) Type() MessageID      { return m.ID }
func (m Call) Type() MessageID         { return m.ID }
func (m CardCommand) Type() MessageID  { return m.ID }
func (m Offer) Type() MessageID        { return m.ID }
func (m Notice) Type() MessageID       { return m.ID }
func (State) Type() MessageID          { return STATE }
func (m Opaque) Type() MessageID       { return m.ID }
func (m Unrecognized) Type() MessageID { return m.ID }

func (Join) isMessage()         {}
func (JoinAccept) isMessage()   {}
func (Text) isMessage()         {}
func (Command) isMessage()      {}
func (Call) isMessage()         {}
func (CardCommand) isMessage()  {}
func (Offer) isMessage()        {}
func (Notice) isMessage()       {}
func (State) isMessage()        {}
func (Opaque) isMessage()       {}
func (Unrecognized) isMessage() {}
