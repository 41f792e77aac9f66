package kbcustom

import "github.com/tuannm99/novakb/internal/record"

// SearchLink links origins to the station waveforms searched for them.
var SearchLink = register(record.MustSchema("search_link",
	[]record.Column{
		record.Long("evid", idLimit, -1),
		record.Long("orid", idLimit, -1),
		record.Double("olat", "%1.6f", -999),
		record.Double("olon", "%1.6f", -999),
		record.Double("depth", "%1.4f", -999),
		record.Double("mb", "%1.2f", -999),
		record.Double("ms", "%1.2f", -999),
		record.Double("ml", "%1.2f", -999),
		record.Double("time", "%1.5f", -9999999999.999),
		record.Long("jdate", jdateLimit, -1),
		record.String("etype", 7).WithNA("-"),
		record.String("sta", 6),
		record.String("chan", 8),
		record.Double("slat", "%1.6f", -999),
		record.Double("slon", "%1.6f", -999),
		record.Double("degdist", "%1.3f", -1),
		record.Double("seaz", "%1.2f", -1),
		record.Double("esaz", "%1.2f", -1),
		record.Long("wfid", idLimit, -1),
	},
	[]string{"wfid"},
	[]string{"orid", "sta", "chan"},
))
