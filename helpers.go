package rxport

import (
	"github.com/df-mc/dragonfly/server/cmd"
	"github.com/df-mc/dragonfly/server/item"
	"github.com/df-mc/dragonfly/server/player"
	"github.com/df-mc/dragonfly/server/player/form"
)

// HandlerOf returns the PlayerHandler installed on p.
// Returns (nil, false) if p is nil or handled by something else.
func HandlerOf(p *player.Player) (*PlayerHandler, bool) {
	if p == nil {
		return nil, false
	}
	h, ok := p.Handler().(*PlayerHandler)
	return h, ok
}

// Command extracts the player and its handler from a command source.
// Returns (nil, nil) if the source is not a player or has no PlayerHandler.
//
// Usage:
//
//	func (c MuteCommand) Run(src cmd.Source, out *cmd.Output, tx *world.Tx) {
//	    p, h := rxport.Command(src)
//	    if p == nil || h == nil {
//	        out.Error("Player-only command")
//	        return
//	    }
//	    rxport.OpenIn(h.Scope(), &MutePort{Player: p})
//	}
func Command(src cmd.Source) (*player.Player, *PlayerHandler) {
	p, ok := src.(*player.Player)
	if !ok {
		return nil, nil
	}
	h, _ := HandlerOf(p)
	return p, h
}

// Form extracts the player and its handler from a form submitter.
// Returns (nil, nil) if the submitter is not a player or has no PlayerHandler.
func Form(sub form.Submitter) (*player.Player, *PlayerHandler) {
	p, ok := sub.(*player.Player)
	if !ok {
		return nil, nil
	}
	h, _ := HandlerOf(p)
	return p, h
}

// Item extracts the player and its handler from an item user.
// Returns (nil, nil) if the user is not a player or has no PlayerHandler.
//
// Usage:
//
//	func (i MyItem) Use(tx *world.Tx, user item.User, ctx *item.UseContext) bool {
//	    p, h := rxport.Item(user)
//	    if p == nil || h == nil {
//	        return false
//	    }
//	    return rxport.PublishWith(h.Manager().Bus(), ItemUsed, p) == nil
//	}
func Item(user item.User) (*player.Player, *PlayerHandler) {
	p, ok := user.(*player.Player)
	if !ok {
		return nil, nil
	}
	h, _ := HandlerOf(p)
	return p, h
}
