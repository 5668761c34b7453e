// Package device numbers the devices attached to the machine. The nucleus only
// knows a semaphore and a completion slot per device, never device protocols.
package device

import (
	"fmt"
	"strconv"
	"strings"
)

// ID is a device number
type ID int

// Kind groups devices of the same type
type Kind string

const (
	Terminal Kind = "terminal"
	Printer  Kind = "printer"
	Disk     Kind = "disk"
	Floppy   Kind = "floppy"
)

// None is the invalid device number
const None ID = -1

var layout = []struct {
	kind  Kind
	count int
}{
	{Terminal, 5},
	{Printer, 2},
	{Disk, 4},
	{Floppy, 4},
}

// Count is the number of devices
const Count = 15

// Valid reports whether id names an attached device
func (id ID) Valid() bool {
	return id >= 0 && id < Count
}

// Kind returns the device kind and its unit number within the kind
func (id ID) Kind() (Kind, int) {
	if !id.Valid() {
		return "", -1
	}
	base := 0
	for _, group := range layout {
		if int(id) < base+group.count {
			return group.kind, int(id) - base
		}
		base += group.count
	}
	return "", -1
}

func (id ID) String() string {
	kind, unit := id.Kind()
	if kind == "" {
		return fmt.Sprintf("device(%d)", int(id))
	}
	return string(kind) + strconv.Itoa(unit)
}

// Parse resolves a device name such as "disk2" or a plain number
func Parse(name string) (ID, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if n, err := strconv.Atoi(name); err == nil {
		if id := ID(n); id.Valid() {
			return id, nil
		}
		return None, fmt.Errorf("invalid device number: %v", n)
	}
	base := 0
	for _, group := range layout {
		if strings.HasPrefix(name, string(group.kind)) {
			unit, err := strconv.Atoi(name[len(group.kind):])
			if err != nil || unit < 0 || unit >= group.count {
				return None, fmt.Errorf("invalid %v unit: %v", group.kind, name)
			}
			return ID(base + unit), nil
		}
		base += group.count
	}
	return None, fmt.Errorf("unknown device: %v", name)
}
