package profile

import (
	"slices"
	"strings"
)

// CommandKind identifies one directive of the profile language.
type CommandKind uint8

const (
	_ CommandKind = iota
	CmdAllowDebuggers
	CmdAllusers
	CmdApparmor
	CmdBind
	CmdBlacklist
	CmdCaps
	CmdCapsDropAll
	CmdCapsDrop
	CmdCapsKeep
	CmdDBusSystem
	CmdDBusSystemOwn
	CmdDBusSystemTalk
	CmdDBusUser
	CmdDBusUserOwn
	CmdDBusUserTalk
	CmdDeterministicExitCode
	CmdDeterministicShutdown
	CmdDisableMnt
	CmdEnv
	CmdHostname
	CmdIgnore
	CmdInclude
	CmdIPCNamespace
	CmdJoinOrStart
	CmdKeepConfigPulse
	CmdKeepDevShm
	CmdKeepVarTmp
	CmdMachineID
	CmdMemoryDenyWriteExecute
	CmdMkdir
	CmdMkfile
	CmdName
	CmdNetNone
	CmdNetfilter
	CmdNo3d
	CmdNoblacklist
	CmdNodbus
	CmdNodvd
	CmdNoexec
	CmdNogroups
	CmdNoinput
	CmdNonewprivs
	CmdNoprinters
	CmdNoroot
	CmdNosound
	CmdNotv
	CmdNou2f
	CmdNovideo
	CmdNowhitelist
	CmdPrivate
	CmdPrivateBin
	CmdPrivateCache
	CmdPrivateCwd
	CmdPrivateDev
	CmdPrivateEtc
	CmdPrivateLib
	CmdPrivateOpt
	CmdPrivateSrv
	CmdPrivateTmp
	CmdProtocol
	CmdQuiet
	CmdReadOnly
	CmdReadWrite
	CmdSeccomp
	CmdSeccompErrorAction
	CmdSeccompBlockSecondary
	CmdSeccompDrop
	CmdSeccompKeep
	CmdShellNone
	CmdTracelog
	CmdWhitelist
	CmdWritableRunUser
	CmdWritableVar
	CmdWritableVarLog
	CmdX11None
)

// Command is one parsed directive. Kind selects the directive; of the
// payload fields only the ones its shape uses are set:
//
//   - Arg: single free-string argument, or the first half of a pair
//   - Arg2: second half of a bind/env pair
//   - HasArg: payload present, for the optional-payload directives
//     (private, private-lib, seccomp)
//   - List: comma-separated free strings, order preserved verbatim
//   - Caps, Protocols, Policy, Action: typed sub-grammar payloads
type Command struct {
	Kind      CommandKind
	Arg       string
	Arg2      string
	HasArg    bool
	List      []string
	Caps      []Capability
	Protocols []Protocol
	Policy    DBusPolicy
	Action    SeccompErrorAction
}

// argShape describes how a directive's payload is parsed and formatted.
type argShape uint8

const (
	shapeNone     argShape = iota // bare keyword or fixed phrase
	shapeString                   // keyword + free string
	shapeOptString                // bare keyword, or keyword + free string
	shapeList                     // keyword + comma list of free strings
	shapeOptList                  // bare keyword, or keyword + comma list
	shapeCapList                  // keyword + comma list of capabilities
	shapeProtoList                // keyword + comma list of protocols
	shapePolicy                   // keyword + dbus policy
	shapeAction                   // keyword + seccomp error action
	shapeBindPair                 // keyword + "src,dst"
	shapeEnvPair                  // keyword + "name=value"
)

type commandSpec struct {
	kind    CommandKind
	keyword string
	shape   argShape
}

// commandTable is the single source of truth for the directive grammar.
// Keywords with an embedded space are fixed phrases matched against the
// whole line; everything else is matched against the token before the
// first space. Precedence falls out of the two derived tables: the
// whole-line form wins exactly when the line carries no argument.
var commandTable = []commandSpec{
	{CmdAllowDebuggers, "allow-debuggers", shapeNone},
	{CmdAllusers, "allusers", shapeNone},
	{CmdApparmor, "apparmor", shapeNone},
	{CmdBind, "bind", shapeBindPair},
	{CmdBlacklist, "blacklist", shapeString},
	{CmdCaps, "caps", shapeNone},
	{CmdCapsDropAll, "caps.drop all", shapeNone},
	{CmdCapsDrop, "caps.drop", shapeCapList},
	{CmdCapsKeep, "caps.keep", shapeCapList},
	{CmdDBusSystem, "dbus-system", shapePolicy},
	{CmdDBusSystemOwn, "dbus-system.own", shapeString},
	{CmdDBusSystemTalk, "dbus-system.talk", shapeString},
	{CmdDBusUser, "dbus-user", shapePolicy},
	{CmdDBusUserOwn, "dbus-user.own", shapeString},
	{CmdDBusUserTalk, "dbus-user.talk", shapeString},
	{CmdDeterministicExitCode, "deterministic-exit-code", shapeNone},
	{CmdDeterministicShutdown, "deterministic-shutdown", shapeNone},
	{CmdDisableMnt, "disable-mnt", shapeNone},
	{CmdEnv, "env", shapeEnvPair},
	{CmdHostname, "hostname", shapeString},
	{CmdIgnore, "ignore", shapeString},
	{CmdInclude, "include", shapeString},
	{CmdIPCNamespace, "ipc-namespace", shapeNone},
	{CmdJoinOrStart, "join-or-start", shapeString},
	{CmdKeepConfigPulse, "keep-config-pulse", shapeNone},
	{CmdKeepDevShm, "keep-dev-shm", shapeNone},
	{CmdKeepVarTmp, "keep-var-tmp", shapeNone},
	{CmdMachineID, "machine-id", shapeNone},
	{CmdMemoryDenyWriteExecute, "memory-deny-write-execute", shapeNone},
	{CmdMkdir, "mkdir", shapeString},
	{CmdMkfile, "mkfile", shapeString},
	{CmdName, "name", shapeString},
	{CmdNetNone, "net none", shapeNone},
	{CmdNetfilter, "netfilter", shapeNone},
	{CmdNo3d, "no3d", shapeNone},
	{CmdNoblacklist, "noblacklist", shapeString},
	{CmdNodbus, "nodbus", shapeNone},
	{CmdNodvd, "nodvd", shapeNone},
	{CmdNoexec, "noexec", shapeString},
	{CmdNogroups, "nogroups", shapeNone},
	{CmdNoinput, "noinput", shapeNone},
	{CmdNonewprivs, "nonewprivs", shapeNone},
	{CmdNoprinters, "noprinters", shapeNone},
	{CmdNoroot, "noroot", shapeNone},
	{CmdNosound, "nosound", shapeNone},
	{CmdNotv, "notv", shapeNone},
	{CmdNou2f, "nou2f", shapeNone},
	{CmdNovideo, "novideo", shapeNone},
	{CmdNowhitelist, "nowhitelist", shapeString},
	{CmdPrivate, "private", shapeOptString},
	{CmdPrivateBin, "private-bin", shapeList},
	{CmdPrivateCache, "private-cache", shapeNone},
	{CmdPrivateCwd, "private-cwd", shapeString},
	{CmdPrivateDev, "private-dev", shapeNone},
	{CmdPrivateEtc, "private-etc", shapeList},
	{CmdPrivateLib, "private-lib", shapeOptList},
	{CmdPrivateOpt, "private-opt", shapeList},
	{CmdPrivateSrv, "private-srv", shapeList},
	{CmdPrivateTmp, "private-tmp", shapeNone},
	{CmdProtocol, "protocol", shapeProtoList},
	{CmdQuiet, "quiet", shapeNone},
	{CmdReadOnly, "read-only", shapeString},
	{CmdReadWrite, "read-write", shapeString},
	{CmdSeccomp, "seccomp", shapeOptList},
	{CmdSeccompErrorAction, "seccomp-error-action", shapeAction},
	{CmdSeccompBlockSecondary, "seccomp.block-secondary", shapeNone},
	{CmdSeccompDrop, "seccomp.drop", shapeList},
	{CmdSeccompKeep, "seccomp.keep", shapeList},
	{CmdShellNone, "shell none", shapeNone},
	{CmdTracelog, "tracelog", shapeNone},
	{CmdWhitelist, "whitelist", shapeString},
	{CmdWritableRunUser, "writable-run-user", shapeNone},
	{CmdWritableVar, "writable-var", shapeNone},
	{CmdWritableVarLog, "writable-var-log", shapeNone},
	{CmdX11None, "x11 none", shapeNone},
}

var (
	// exactCommands matches a whole line: bare keywords, fixed phrases,
	// and the bare form of optional-payload directives.
	exactCommands = make(map[string]CommandKind, len(commandTable))
	// argCommands matches the token before the first space of a line
	// that carries an argument.
	argCommands = make(map[string]commandSpec, len(commandTable))
	// commandSpecs drives formatting.
	commandSpecs = make(map[CommandKind]commandSpec, len(commandTable))
)

func init() {
	for _, spec := range commandTable {
		commandSpecs[spec.kind] = spec
		switch spec.shape {
		case shapeNone:
			exactCommands[spec.keyword] = spec.kind
		case shapeOptString, shapeOptList:
			exactCommands[spec.keyword] = spec.kind
			argCommands[spec.keyword] = spec
		default:
			argCommands[spec.keyword] = spec
		}
	}
}

// ParseCommand recognizes a single directive line.
func ParseCommand(line string) (Command, error) {
	if kind, ok := exactCommands[line]; ok {
		return Command{Kind: kind}, nil
	}

	keyword, arg, ok := strings.Cut(line, " ")
	if !ok {
		return Command{}, ErrBadCommand
	}
	spec, ok := argCommands[keyword]
	if !ok {
		return Command{}, ErrBadCommand
	}

	switch spec.shape {
	case shapeString:
		return Command{Kind: spec.kind, Arg: arg}, nil
	case shapeOptString:
		return Command{Kind: spec.kind, Arg: arg, HasArg: true}, nil
	case shapeList:
		return Command{Kind: spec.kind, List: strings.Split(arg, ",")}, nil
	case shapeOptList:
		return Command{Kind: spec.kind, List: strings.Split(arg, ","), HasArg: true}, nil
	case shapeCapList:
		tokens := strings.Split(arg, ",")
		caps := make([]Capability, len(tokens))
		for i, tok := range tokens {
			c, err := ParseCapability(tok)
			if err != nil {
				return Command{}, err
			}
			caps[i] = c
		}
		return Command{Kind: spec.kind, Caps: caps}, nil
	case shapeProtoList:
		tokens := strings.Split(arg, ",")
		protos := make([]Protocol, len(tokens))
		for i, tok := range tokens {
			p, err := ParseProtocol(tok)
			if err != nil {
				return Command{}, err
			}
			protos[i] = p
		}
		return Command{Kind: spec.kind, Protocols: protos}, nil
	case shapePolicy:
		policy, err := ParseDBusPolicy(arg)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: spec.kind, Policy: policy}, nil
	case shapeAction:
		action, err := ParseSeccompErrorAction(arg)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: spec.kind, Action: action}, nil
	case shapeBindPair:
		src, dst, found := strings.Cut(arg, ",")
		if !found {
			return Command{}, ErrBadBind
		}
		return Command{Kind: spec.kind, Arg: src, Arg2: dst}, nil
	case shapeEnvPair:
		name, value, found := strings.Cut(arg, "=")
		if !found {
			return Command{}, ErrBadEnv
		}
		return Command{Kind: spec.kind, Arg: name, Arg2: value}, nil
	}
	return Command{}, ErrBadCommand
}

// String formats the directive back to its canonical line, the left
// inverse of ParseCommand. List payloads are re-joined in their stored
// order.
func (c Command) String() string {
	spec, ok := commandSpecs[c.Kind]
	if !ok {
		return ""
	}
	switch spec.shape {
	case shapeNone:
		return spec.keyword
	case shapeString:
		return spec.keyword + " " + c.Arg
	case shapeOptString:
		if !c.HasArg {
			return spec.keyword
		}
		return spec.keyword + " " + c.Arg
	case shapeList:
		return spec.keyword + " " + strings.Join(c.List, ",")
	case shapeOptList:
		if !c.HasArg {
			return spec.keyword
		}
		return spec.keyword + " " + strings.Join(c.List, ",")
	case shapeCapList:
		return spec.keyword + " " + joinCapabilities(c.Caps)
	case shapeProtoList:
		return spec.keyword + " " + joinProtocols(c.Protocols)
	case shapePolicy:
		return spec.keyword + " " + c.Policy.String()
	case shapeAction:
		return spec.keyword + " " + string(c.Action)
	case shapeBindPair:
		return spec.keyword + " " + c.Arg + "," + c.Arg2
	case shapeEnvPair:
		return spec.keyword + " " + c.Arg + "=" + c.Arg2
	}
	return ""
}

// Equal reports payload-wise value equality. List payloads compare in
// order; no canonicalization is applied.
func (c Command) Equal(o Command) bool {
	return c.Kind == o.Kind &&
		c.Arg == o.Arg &&
		c.Arg2 == o.Arg2 &&
		c.HasArg == o.HasArg &&
		slices.Equal(c.List, o.List) &&
		slices.Equal(c.Caps, o.Caps) &&
		slices.Equal(c.Protocols, o.Protocols) &&
		c.Policy == o.Policy &&
		c.Action == o.Action
}

func joinCapabilities(caps []Capability) string {
	parts := make([]string, len(caps))
	for i, c := range caps {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}

func joinProtocols(protos []Protocol) string {
	parts := make([]string, len(protos))
	for i, p := range protos {
		parts[i] = p.String()
	}
	return strings.Join(parts, ",")
}
