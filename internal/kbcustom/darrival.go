package kbcustom

import "github.com/tuannm99/novakb/internal/record"

// Darrival holds derived arrivals.
var Darrival = register(record.MustSchema("darrival",
	[]record.Column{
		record.Long("darid", idLimit, minLong),
		record.Long("orid", idLimit, minLong),
		record.Long("evid", idLimit, -1),
		record.String("sta", 6),
		record.Double("dtime", "%1.5f", nan),
		record.String("dphase", 8),
		record.Double("delta", "%1.3f", -1),
		record.String("vmodel", 15).WithNA("-"),
		record.Double("darrival_amp", "%1.2f", -999),
		record.Double("per", "%1.2f", -1),
		record.Double("logat", "%1.2f", -999),
		record.String("qual", 1).WithNA("-"),
		record.String("auth", 20),
		record.Long("commid", idLimit, -1),
	},
	[]string{"darid"},
	[]string{"orid", "sta", "dtime", "dphase"},
))
