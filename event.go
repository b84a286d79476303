package rxport

import (
	"time"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/player"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// PlayerNotice enumerates the player notices published by PlayerHandler.
// Each notice is published with its matching Event payload pointer, so
// subscribe with the payload type:
//
//	rxport.On(b, rxport.PlayerMoved, func(e *rxport.EventMove) { ... })
type PlayerNotice uint8

const (
	PlayerJoined PlayerNotice = iota
	PlayerQuit
	PlayerMoved
	PlayerJumped
	PlayerTeleported
	PlayerChangedWorld
	PlayerChatted
	PlayerHurt
	PlayerHealed
	PlayerDied
	PlayerRespawned
)

// String returns the string representation of the notice.
func (n PlayerNotice) String() string {
	switch n {
	case PlayerJoined:
		return "PlayerJoined"
	case PlayerQuit:
		return "PlayerQuit"
	case PlayerMoved:
		return "PlayerMoved"
	case PlayerJumped:
		return "PlayerJumped"
	case PlayerTeleported:
		return "PlayerTeleported"
	case PlayerChangedWorld:
		return "PlayerChangedWorld"
	case PlayerChatted:
		return "PlayerChatted"
	case PlayerHurt:
		return "PlayerHurt"
	case PlayerHealed:
		return "PlayerHealed"
	case PlayerDied:
		return "PlayerDied"
	case PlayerRespawned:
		return "PlayerRespawned"
	default:
		return "Unknown"
	}
}

// Event types wrap Dragonfly handler parameters.
// ID is the UUID of the player the handler was created for.

// EventJoin is published when a handler is created for a player.
type EventJoin struct {
	ID     uuid.UUID
	Player *player.Player
}

// EventQuit is published when a player quits, before the player's scope closes.
type EventQuit struct {
	ID     uuid.UUID
	Player *player.Player
}

// EventMove is published when a player moves.
type EventMove struct {
	ID       uuid.UUID
	Ctx      *player.Context
	Position mgl64.Vec3
	Rotation cube.Rotation
}

func (e *EventMove) Cancel() { e.Ctx.Cancel() }

// EventJump is published when a player jumps.
type EventJump struct {
	ID     uuid.UUID
	Player *player.Player
}

// EventTeleport is published when a player is teleported.
type EventTeleport struct {
	ID       uuid.UUID
	Ctx      *player.Context
	Position mgl64.Vec3
}

func (e *EventTeleport) Cancel() { e.Ctx.Cancel() }

// EventChangeWorld is published when a player changes worlds.
type EventChangeWorld struct {
	ID     uuid.UUID
	Player *player.Player
	Before *world.World
	After  *world.World
}

// EventChat is published when a player sends a chat message.
// Subscribers may rewrite Message.
type EventChat struct {
	ID      uuid.UUID
	Ctx     *player.Context
	Message *string
}

func (e *EventChat) Cancel() { e.Ctx.Cancel() }

// EventHurt is published when a player is hurt.
type EventHurt struct {
	ID       uuid.UUID
	Ctx      *player.Context
	Damage   *float64
	Immune   bool
	Immunity *time.Duration
	Source   world.DamageSource
}

func (e *EventHurt) Cancel() { e.Ctx.Cancel() }

// EventHeal is published when a player is healed.
type EventHeal struct {
	ID     uuid.UUID
	Ctx    *player.Context
	Health *float64
	Source world.HealingSource
}

func (e *EventHeal) Cancel() { e.Ctx.Cancel() }

// EventDeath is published when a player dies.
type EventDeath struct {
	ID            uuid.UUID
	Player        *player.Player
	Source        world.DamageSource
	KeepInventory *bool
}

// EventRespawn is published when a player respawns.
type EventRespawn struct {
	ID       uuid.UUID
	Player   *player.Player
	Position *mgl64.Vec3
	World    **world.World
}
