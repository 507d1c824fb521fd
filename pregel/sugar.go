package pregel

// SubscribeTo builds the Subscription for an Invoke process, grounded on
// the original's `Pregel.subscribe_to` (original_source/permchain/pregel/
// __init__.py): a single name yields the singleton-none {∅: name} form, and
// multiple names yield a Record keyed by each channel's own name.
func SubscribeTo(names ...string) Subscription {
	if len(names) == 1 {
		return Subscription{Raw: names[0]}
	}
	record := make(map[string]string, len(names))
	for _, n := range names {
		record[n] = n
	}
	return Subscription{Record: record}
}

// SubscribeToEach builds a Batch process's channel/key pair, grounded on
// `Pregel.subscribe_to_each`. key is optional; pass "" for an unwrapped
// sequence.
func SubscribeToEach(channel string, key string) (string, string) {
	return channel, key
}

// Sink turns a process's computed value into a set of channel writes,
// grounded on `Pregel.send_to`. Apply sends value (or, for SendToKeyed, each
// transform's result) to every target channel via rc.Send.
type Sink struct {
	direct  []string
	keyed   map[string]func(value interface{}) interface{}
}

// SendTo builds a Sink that writes the same value to every named channel.
func SendTo(names ...string) Sink {
	return Sink{direct: names}
}

// SendToKeyed builds a Sink that, for each channel name, writes the result
// of applying that channel's transform to the process's value — the
// per-channel-transform overload of the original's `send_to(**kwargs)`.
func SendToKeyed(transforms map[string]func(value interface{}) interface{}) Sink {
	return Sink{keyed: transforms}
}

// Names returns every channel name this Sink targets, for use as an
// InvokeProcess/BatchProcess's Writes declaration.
func (s Sink) Names() []string {
	if len(s.keyed) > 0 {
		names := make([]string, 0, len(s.keyed))
		for name := range s.keyed {
			names = append(names, name)
		}
		return names
	}
	out := make([]string, len(s.direct))
	copy(out, s.direct)
	return out
}

// Apply sends value (direct sinks) or per-channel transform results (keyed
// sinks) to every target channel via rc.Send. A nil transform result is not
// sent, mirroring the original's "write ... or None to skip writing".
func (s Sink) Apply(rc RunContext, value interface{}) {
	if len(s.keyed) > 0 {
		for name, transform := range s.keyed {
			if result := transform(value); result != nil {
				rc.Send(name, result)
			}
		}
		return
	}
	for _, name := range s.direct {
		rc.Send(name, value)
	}
}
