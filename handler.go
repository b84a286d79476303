package rxport

import (
	"sync/atomic"
	"time"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/player"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// PlayerHandler is a player.Handler that publishes player events as
// PlayerNotice notices on a manager's bus.
//
// Every handler owns a Scope. The scope ties only the lifetime of its ports
// to the player: they close when the player quits. The bus is shared by
// every player, so a scoped port still receives every player's events and
// should filter on the payload's ID. The registry also keeps only the last
// opened instance of each port type.
//
//	for p := range srv.Accept() {
//	    h := rxport.NewHandler(mngr, p)
//	    rxport.OpenIn(h.Scope(), &NameTagPort{ID: p.UUID(), Player: p})
//	    p.Handle(h)
//	}
//
// Concurrency:
// Dragonfly calls handlers synchronously with the player's world
// transaction, so subscribers run inside that transaction.
type PlayerHandler struct {
	player.NopHandler

	manager *Manager
	scope   *Scope
	id      uuid.UUID
	quit    atomic.Bool
}

// Compile-time check that PlayerHandler implements player.Handler.
var _ player.Handler = (*PlayerHandler)(nil)

// NewHandler creates the handler for p and publishes PlayerJoined.
func NewHandler(m *Manager, p *player.Player) *PlayerHandler {
	h := &PlayerHandler{
		manager: m,
		scope:   m.NewScope(),
	}
	if p != nil {
		h.id = p.UUID()
	}

	publishEvent(h, PlayerJoined, &EventJoin{ID: h.id, Player: p})
	return h
}

// ID returns the UUID of the player the handler was created for.
func (h *PlayerHandler) ID() uuid.UUID {
	return h.id
}

// Scope returns the scope closed when the player quits.
func (h *PlayerHandler) Scope() *Scope {
	return h.scope
}

// Manager returns the manager the handler publishes through.
func (h *PlayerHandler) Manager() *Manager {
	return h.manager
}

// publishEvent publishes e unless the player already quit.
func publishEvent[P any](h *PlayerHandler, n PlayerNotice, e P) {
	if h.quit.Load() {
		return
	}
	if err := PublishWith(h.manager.bus, n, e); err != nil {
		h.manager.logger.Warn("rxport: dropped player event",
			"notice", n,
			"player", h.id,
			"error", err)
	}
}

// HandleMove handles the player moving.
func (h *PlayerHandler) HandleMove(ctx *player.Context, newPos mgl64.Vec3, newRot cube.Rotation) {
	publishEvent(h, PlayerMoved, &EventMove{ID: h.id, Ctx: ctx, Position: newPos, Rotation: newRot})
}

// HandleJump handles the player jumping.
func (h *PlayerHandler) HandleJump(p *player.Player) {
	publishEvent(h, PlayerJumped, &EventJump{ID: h.id, Player: p})
}

// HandleTeleport handles the player being teleported.
func (h *PlayerHandler) HandleTeleport(ctx *player.Context, pos mgl64.Vec3) {
	publishEvent(h, PlayerTeleported, &EventTeleport{ID: h.id, Ctx: ctx, Position: pos})
}

// HandleChangeWorld handles the player changing worlds.
func (h *PlayerHandler) HandleChangeWorld(p *player.Player, before, after *world.World) {
	publishEvent(h, PlayerChangedWorld, &EventChangeWorld{ID: h.id, Player: p, Before: before, After: after})
}

// HandleChat handles the player sending a chat message.
func (h *PlayerHandler) HandleChat(ctx *player.Context, message *string) {
	publishEvent(h, PlayerChatted, &EventChat{ID: h.id, Ctx: ctx, Message: message})
}

// HandleHurt handles the player being hurt.
func (h *PlayerHandler) HandleHurt(ctx *player.Context, damage *float64, immune bool, attackImmunity *time.Duration, src world.DamageSource) {
	publishEvent(h, PlayerHurt, &EventHurt{ID: h.id, Ctx: ctx, Damage: damage, Immune: immune, Immunity: attackImmunity, Source: src})
}

// HandleHeal handles the player being healed.
func (h *PlayerHandler) HandleHeal(ctx *player.Context, health *float64, src world.HealingSource) {
	publishEvent(h, PlayerHealed, &EventHeal{ID: h.id, Ctx: ctx, Health: health, Source: src})
}

// HandleDeath handles the player dying.
func (h *PlayerHandler) HandleDeath(p *player.Player, src world.DamageSource, keepInv *bool) {
	publishEvent(h, PlayerDied, &EventDeath{ID: h.id, Player: p, Source: src, KeepInventory: keepInv})
}

// HandleRespawn handles the player respawning.
func (h *PlayerHandler) HandleRespawn(p *player.Player, pos *mgl64.Vec3, w **world.World) {
	publishEvent(h, PlayerRespawned, &EventRespawn{ID: h.id, Player: p, Position: pos, World: w})
}

// HandleQuit publishes PlayerQuit and closes the player's scope.
// Events arriving after quit are dropped.
func (h *PlayerHandler) HandleQuit(p *player.Player) {
	publishEvent(h, PlayerQuit, &EventQuit{ID: h.id, Player: p})
	h.quit.Store(true)
	h.scope.Close()
}
