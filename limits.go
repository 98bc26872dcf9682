package odf

type Limits struct {
	MaxEntries     int    // archive entries considered before giving up
	MaxContentSize uint64 // content.xml bytes after inflation
	MaxEntrySize   uint64 // declared uncompressed size of any single entry
}

func defaultLimits() Limits {
	return Limits{
		MaxEntries:     10_000,
		MaxContentSize: 64 << 20,  // 64 MiB
		MaxEntrySize:   256 << 20, // 256 MiB
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxEntries == 0 {
		l.MaxEntries = d.MaxEntries
	}
	if l.MaxContentSize == 0 {
		l.MaxContentSize = d.MaxContentSize
	}
	if l.MaxEntrySize == 0 {
		l.MaxEntrySize = d.MaxEntrySize
	}
	return l
}
