package profile

import "fmt"

// Protocol is one socket family as accepted by the protocol directive.
type Protocol uint8

const (
	ProtoUnix Protocol = iota
	ProtoInet
	ProtoInet6
	ProtoNetlink
	ProtoPacket
	ProtoBluetooth
)

var protocolNames = [...]string{
	ProtoUnix:      "unix",
	ProtoInet:      "inet",
	ProtoInet6:     "inet6",
	ProtoNetlink:   "netlink",
	ProtoPacket:    "packet",
	ProtoBluetooth: "bluetooth",
}

var protocolIndex = make(map[string]Protocol, len(protocolNames))

func init() {
	for i, name := range protocolNames {
		protocolIndex[name] = Protocol(i)
	}
}

// ParseProtocol maps a protocol name to its Protocol value.
func ParseProtocol(s string) (Protocol, error) {
	p, ok := protocolIndex[s]
	if !ok {
		return 0, ErrBadProtocol
	}
	return p, nil
}

func (p Protocol) String() string {
	if int(p) < len(protocolNames) {
		return protocolNames[p]
	}
	return fmt.Sprintf("Protocol(%d)", uint8(p))
}
