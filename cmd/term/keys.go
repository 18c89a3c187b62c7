package main

import (
	"encoding/json"

	"github.com/gdamore/tcell/v2"

	"roguely-server/pkg/api"
)

// keyCommand переводит нажатие в команду. quit - выход из клиента.
func keyCommand(key tcell.Key, ch rune) (cmd api.ClientCommand, ok bool, quit bool) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return cmd, false, true
	case tcell.KeyUp:
		return move("UP"), true, false
	case tcell.KeyDown:
		return move("DOWN"), true, false
	case tcell.KeyLeft:
		return move("LEFT"), true, false
	case tcell.KeyRight:
		return move("RIGHT"), true, false
	case tcell.KeyRune:
	default:
		return cmd, false, false
	}

	switch ch {
	case 'q', 'Q':
		return cmd, false, true
	case 'w', 'W':
		return move("UP"), true, false
	case 's', 'S':
		return move("DOWN"), true, false
	case 'a', 'A':
		return move("LEFT"), true, false
	case 'd', 'D':
		return move("RIGHT"), true, false
	case ' ', '.':
		return api.ClientCommand{Action: "WAIT"}, true, false
	case 'r', 'R':
		return api.ClientCommand{Action: "REDRAW"}, true, false
	}
	return cmd, false, false
}

func move(dir string) api.ClientCommand {
	payload, _ := json.Marshal(api.DirectionPayload{Direction: dir})
	return api.ClientCommand{Action: "MOVE", Payload: payload}
}
