package kbcustom

import "github.com/tuannm99/novakb/internal/record"

// Gttable holds ground-truth summaries linking master and native origins.
var Gttable = register(record.MustSchema("gttable",
	[]record.Column{
		record.Long("gtsid", idLimit, minLong),
		record.Long("masterEvid", idLimit, minLong),
		record.Long("masterOrid", idLimit, minLong),
		record.Long("nativeEvid", idLimit, minLong),
		record.Long("nativeOrid", idLimit, minLong),
		record.Long("prefOrid", idLimit, minLong),
		record.Double("gtEpicenter", "%1.4f", nan),
		record.Double("gtDepth", "%1.4f", nan),
		record.Double("gtOT", "%1.3f", nan),
		record.String("masterOriginName", 32),
		record.String("nativeOriginName", 32).WithNA("-"),
		record.String("methodEpicenter", 20).WithNA("-"),
		record.String("methodDepth", 20).WithNA("-"),
		record.String("methodOT", 20).WithNA("-"),
		record.Long("refid", idLimit, -1),
		record.String("auth", 20).WithNA("-"),
	},
	[]string{"gtsid"},
	[]string{"masterEvid", "masterOrid", "nativeEvid", "nativeOrid", "prefOrid"},
))
