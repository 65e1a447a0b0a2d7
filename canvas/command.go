package canvas

// Command is one keyboard action. At most one is applied per tick.
type Command int

const (
	CmdNone Command = iota
	CmdQuit
	CmdRed
	CmdGreen
	CmdBlue
	CmdThicker
	CmdThinner
	CmdClear
	CmdSave
	CmdSquare
	CmdEllipse
	CmdCircle
	CmdEvaluate
)

var commandNames = map[Command]string{
	CmdNone:     "none",
	CmdQuit:     "quit",
	CmdRed:      "red",
	CmdGreen:    "green",
	CmdBlue:     "blue",
	CmdThicker:  "thicker",
	CmdThinner:  "thinner",
	CmdClear:    "clear",
	CmdSave:     "save",
	CmdSquare:   "square",
	CmdEllipse:  "ellipse",
	CmdCircle:   "circle",
	CmdEvaluate: "evaluate",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseKey maps a key code as returned by gocv.WaitKey to a command.
// Negative codes (no key pressed) and unbound keys yield CmdNone.
func ParseKey(key int) Command {
	if key < 0 {
		return CmdNone
	}
	switch rune(key & 0xFF) {
	case 'q':
		return CmdQuit
	case 'r':
		return CmdRed
	case 'g':
		return CmdGreen
	case 'b':
		return CmdBlue
	case '+':
		return CmdThicker
	case '-':
		return CmdThinner
	case 'c':
		return CmdClear
	case 'w':
		return CmdSave
	case 's':
		return CmdSquare
	case 'e':
		return CmdEllipse
	case 'o':
		return CmdCircle
	case 'v':
		return CmdEvaluate
	default:
		return CmdNone
	}
}
