package dbusmon

import (
	"errors"

	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog"
)

// ErrStreamEnded reports that the bus signal stream terminated. The monitor
// does not reconnect; monitoring is over for the rest of the process.
var ErrStreamEnded = errors.New("signal stream ended")

// Config parametrizes a [Monitor].
type Config struct {
	// Object path of the UPower system battery. Defaults to
	// [DefaultBatteryPath].
	BatteryPath string

	Logger zerolog.Logger
}

// Monitor owns the device registry and system battery state and keeps them
// consistent with the bus. All state is mutated from the [Monitor.Run]
// goroutine only, so no locking is involved.
type Monitor struct {
	conn        *dbus.Conn
	signals     chan *dbus.Signal
	batteryPath string

	registry *Registry
	battery  *Battery
	table    dispatchTable

	batteryOut   chan<- string
	bluetoothOut chan<- string

	log zerolog.Logger
}

// NewMonitor returns a new [Monitor]. The sending halves of the two display
// channels are injected here; the monitor is their only producer.
func NewMonitor(conn *dbus.Conn, cfg Config, batteryOut, bluetoothOut chan<- string) *Monitor {
	if cfg.BatteryPath == "" {
		cfg.BatteryPath = DefaultBatteryPath
	}

	m := &Monitor{
		conn:         conn,
		signals:      make(chan *dbus.Signal, 64),
		batteryPath:  cfg.BatteryPath,
		registry:     NewRegistry(cfg.Logger),
		battery:      NewBattery(cfg.Logger),
		batteryOut:   batteryOut,
		bluetoothOut: bluetoothOut,
		log:          cfg.Logger,
	}

	m.table = dispatchTable{
		{path: "", iface: propertiesIface, member: propertiesChangedMember, handle: m.handlePropertiesChanged},
		{path: "", iface: objectManagerIface, member: interfacesAddedMember, handle: m.handleInterfacesAdded},
		{path: "", iface: objectManagerIface, member: interfacesRemovedMember, handle: m.handleInterfacesRemoved},
	}

	return m
}

// Run subscribes to the signals of interest, seeds state with one-shot
// queries, pushes the first display strings, and then consumes the live
// signal stream until it ends. It always returns a non-nil error: the stream
// ending is unexpected and terminal.
func (m *Monitor) Run() error {
	m.subscribe()
	m.loadBattery()
	m.loadDevices()

	m.log.Info().Msg("listening for bus signals")

	for sig := range m.signals {
		m.dispatch(sig)
	}

	m.log.Error().Msg("bus signal stream ended unexpectedly")

	return ErrStreamEnded
}

// subscribe installs the three match rules. Each installation is attempted
// independently: losing one signal category degrades monitoring but does not
// abort it.
func (m *Monitor) subscribe() {
	if err := m.conn.AddMatchSignal(
		dbus.WithMatchSender(upowerService),
		dbus.WithMatchInterface(propertiesIface),
		dbus.WithMatchMember(propertiesChangedMember),
		dbus.WithMatchObjectPath(dbus.ObjectPath(m.batteryPath)),
	); err != nil {
		m.log.Error().Err(err).Msg("failed to match battery property changes")
	}

	if err := m.conn.AddMatchSignal(
		dbus.WithMatchSender(bluezService),
		dbus.WithMatchInterface(objectManagerIface),
		dbus.WithMatchMember(interfacesAddedMember),
	); err != nil {
		m.log.Error().Err(err).Msg("failed to match interface additions")
	}

	if err := m.conn.AddMatchSignal(
		dbus.WithMatchSender(bluezService),
		dbus.WithMatchInterface(objectManagerIface),
		dbus.WithMatchMember(interfacesRemovedMember),
	); err != nil {
		m.log.Error().Err(err).Msg("failed to match interface removals")
	}

	m.conn.Signal(m.signals)
}

// loadBattery queries the current battery percentage and charging state.
// Absence of a battery is expected on desktop machines and yields empty
// battery text, not an error state.
func (m *Monitor) loadBattery() {
	obj := m.conn.Object(upowerService, dbus.ObjectPath(m.batteryPath))

	pct, err := obj.GetProperty(upowerDeviceIface + "." + percentageProp)
	if err != nil {
		m.log.Info().Err(err).Msg("no system battery detected")
	} else if f, err := float64Value(pct); err != nil {
		m.log.Error().Err(err).Msg("bad initial battery percentage")
	} else {
		m.battery.Percentage = &f
		m.log.Info().Float64("percentage", f).Msg("initial battery reading")
	}

	state, err := obj.GetProperty(upowerDeviceIface + "." + stateProp)
	if err != nil {
		m.log.Debug().Err(err).Msg("no initial battery state")
	} else if u, err := uint32Value(state); err != nil {
		m.log.Error().Err(err).Msg("bad initial battery state")
	} else {
		m.battery.State = ChargeState(u)
		m.log.Info().Stringer("state", m.battery.State).Msg("initial battery state")
	}

	m.emitBattery()
}

// loadDevices seeds the registry from the BlueZ object manager inventory.
// Failure of the inventory call is non-fatal: the registry stays empty and
// the empty-state summary is still emitted.
func (m *Monitor) loadDevices() {
	var objects map[dbus.ObjectPath]map[string]map[string]dbus.Variant

	err := m.conn.Object(bluezService, bluezRootPath).
		Call(objectManagerIface+".GetManagedObjects", 0).
		Store(&objects)
	if err != nil {
		m.log.Error().Err(err).Msg("failed to query Bluetooth inventory")
		m.emitBluetooth()
		return
	}

	m.log.Info().Int("objects", len(objects)).Msg("loaded Bluetooth inventory")

	for path, ifaces := range objects {
		m.registry.ApplyAdded(string(path), ifaces)
	}

	m.emitBluetooth()
}

// dispatch classifies one signal and routes it through the dispatch table.
// Malformed or unrecognized signals are logged and dropped; nothing here can
// stop the loop.
func (m *Monitor) dispatch(sig *dbus.Signal) {
	if sig.Path == "" {
		m.log.Debug().Str("name", sig.Name).Msg("signal without object path, ignoring")
		return
	}

	iface, member, err := splitSignalName(sig.Name)
	if err != nil {
		m.log.Debug().Err(err).Msg("signal without member, ignoring")
		return
	}

	handle, ok := m.table.lookup(string(sig.Path), iface, member)
	if !ok {
		m.log.Warn().
			Str("path", string(sig.Path)).
			Str("interface", iface).
			Str("member", member).
			Msg("unhandled signal")
		return
	}

	handle(sig)
}

// handlePropertiesChanged routes a PropertiesChanged signal by the interface
// named in its body: the system battery, a peripheral battery, or a
// peripheral media control.
func (m *Monitor) handlePropertiesChanged(sig *dbus.Signal) {
	iface, changed, err := propertiesChangedBody(sig.Body)
	if err != nil {
		m.log.Error().Err(err).Msg("bad PropertiesChanged body")
		return
	}

	path := string(sig.Path)

	switch iface {
	case upowerDeviceIface:
		if m.battery.Apply(changed) {
			m.emitBattery()
		}
	case batteryIface:
		if m.registry.ApplyBatteryChanged(path, changed) {
			m.emitBluetooth()
		}
	case mediaIface:
		if m.registry.ApplyMediaChanged(path) {
			m.emitBluetooth()
		}
	default:
		m.log.Debug().Str("interface", iface).Msg("ignored property change")
	}
}

// handleInterfacesAdded merges newly appeared interfaces into the registry.
func (m *Monitor) handleInterfacesAdded(sig *dbus.Signal) {
	path, ifaces, err := interfacesAddedBody(sig.Body)
	if err != nil {
		m.log.Error().Err(err).Msg("bad InterfacesAdded body")
		return
	}

	if _, ok := ifaces[upowerDeviceIface]; ok {
		// A battery appearing at runtime; the subscription already
		// covers its future property changes.
		m.log.Info().Str("path", path).Msg("power device added")
	}

	if m.registry.ApplyAdded(path, ifaces) {
		m.emitBluetooth()
	}
}

// handleInterfacesRemoved clears removed interfaces from the registry and
// garbage-collects emptied records.
func (m *Monitor) handleInterfacesRemoved(sig *dbus.Signal) {
	path, ifaces, err := interfacesRemovedBody(sig.Body)
	if err != nil {
		m.log.Error().Err(err).Msg("bad InterfacesRemoved body")
		return
	}

	if m.registry.ApplyRemoved(path, ifaces) {
		m.emitBluetooth()
	}
}

func (m *Monitor) emitBattery() {
	m.batteryOut <- m.battery.Text()
}

func (m *Monitor) emitBluetooth() {
	m.bluetoothOut <- m.registry.Summary()
}
