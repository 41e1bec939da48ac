package profile

import "fmt"

// Capability is one Linux capability as accepted by the caps.drop and
// caps.keep directives.
type Capability uint8

const (
	CapAuditControl Capability = iota
	CapAuditRead
	CapAuditWrite
	CapBlockSuspend
	CapChown
	CapDacOverride
	CapDacReadSearch
	CapFowner
	CapFsetid
	CapIpcLock
	CapIpcOwner
	CapKill
	CapLease
	CapLinuxImmutable
	CapMacAdmin
	CapMacOverride
	CapMknod
	CapNetAdmin
	CapNetBindService
	CapNetBroadcast
	CapNetRaw
	CapSetfcap
	CapSetgid
	CapSetpcap
	CapSetuid
	CapSysAdmin
	CapSysBoot
	CapSysChroot
	CapSysModule
	CapSysNice
	CapSysPacct
	CapSysPtrace
	CapSysRawio
	CapSysResource
	CapSysTime
	CapSysTtyConfig
	CapSyslog
	CapWakeAlarm
)

var capabilityNames = [...]string{
	CapAuditControl:   "audit_control",
	CapAuditRead:      "audit_read",
	CapAuditWrite:     "audit_write",
	CapBlockSuspend:   "block_suspend",
	CapChown:          "chown",
	CapDacOverride:    "dac_override",
	CapDacReadSearch:  "dac_read_search",
	CapFowner:         "fowner",
	CapFsetid:         "fsetid",
	CapIpcLock:        "ipc_lock",
	CapIpcOwner:       "ipc_owner",
	CapKill:           "kill",
	CapLease:          "lease",
	CapLinuxImmutable: "linux_immutable",
	CapMacAdmin:       "mac_admin",
	CapMacOverride:    "mac_override",
	CapMknod:          "mknod",
	CapNetAdmin:       "net_admin",
	CapNetBindService: "net_bind_service",
	CapNetBroadcast:   "net_broadcast",
	CapNetRaw:         "net_raw",
	CapSetfcap:        "setfcap",
	CapSetgid:         "setgid",
	CapSetpcap:        "setpcap",
	CapSetuid:         "setuid",
	CapSysAdmin:       "sys_admin",
	CapSysBoot:        "sys_boot",
	CapSysChroot:      "sys_chroot",
	CapSysModule:      "sys_module",
	CapSysNice:        "sys_nice",
	CapSysPacct:       "sys_pacct",
	CapSysPtrace:      "sys_ptrace",
	CapSysRawio:       "sys_rawio",
	CapSysResource:    "sys_resource",
	CapSysTime:        "sys_time",
	CapSysTtyConfig:   "sys_tty_config",
	CapSyslog:         "syslog",
	CapWakeAlarm:      "wake_alarm",
}

var capabilityIndex = make(map[string]Capability, len(capabilityNames))

func init() {
	for i, name := range capabilityNames {
		capabilityIndex[name] = Capability(i)
	}
}

// ParseCapability maps a capability name to its Capability value.
func ParseCapability(s string) (Capability, error) {
	c, ok := capabilityIndex[s]
	if !ok {
		return 0, ErrBadCapability
	}
	return c, nil
}

func (c Capability) String() string {
	if int(c) < len(capabilityNames) {
		return capabilityNames[c]
	}
	return fmt.Sprintf("Capability(%d)", uint8(c))
}
