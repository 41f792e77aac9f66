package kbcustom

import "github.com/tuannm99/novakb/internal/record"

// NbEnv holds narrow-band envelope calibration parameters.
var NbEnv = register(record.MustSchema("nb_env",
	[]record.Column{
		record.Long("magyieldid", idLimit, minLong),
		record.Long("bwfilterid", idLimit, minLong),
		record.Long("smooid", idLimit, minLong),
		record.Long("polyid", idLimit, -1),
		record.Double("slowness", "%1.2f", -1),
		record.String("corrtype", 8),
		record.Double("samprate", "%1.7f", nan),
		record.String("phase", 8),
		record.String("rootphase", 8),
		record.String("bandcode", 1),
		record.String("phasecode", 1),
		record.String("rootchan", 8),
		record.String("type", 6),
		record.String("auth", 20),
		record.Long("commid", idLimit, -1),
	},
	[]string{"magyieldid"},
	nil,
))
