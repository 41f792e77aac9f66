package kbcustom

import "github.com/tuannm99/novakb/internal/record"

// NnsaAmpDescript describes the measurement windows of amplitudes.
var NnsaAmpDescript = register(record.MustSchema("nnsa_amp_descript",
	[]record.Column{
		record.Long("windowid", idLimit, minLong),
		record.Long("paramsetid", idLimit, -1),
		record.String("sta", 6),
		record.String("chan", 8),
		record.String("phase", 8),
		record.Double("delta", "%1.3f", nan),
		record.Double("seaz", "%1.2f", nan),
		record.Double("depth", "%1.4f", -999),
		record.Double("gvlo", "%1.2f", -1),
		record.Double("gvhi", "%1.2f", -1),
		record.Double("toff", "%1.3f", -999),
		record.Double("start_time", "%1.5f", nan),
		record.Double("duration", "%1.3f", nan),
		record.Long("evid", idLimit, minLong),
		record.Long("orid", idLimit, minLong),
		record.Long("wfid", idLimit, -1),
		record.Long("arid", idLimit, -1),
		record.Long("algoid", idLimit, -1),
		record.String("auth", 20),
	},
	[]string{"windowid"},
	[]string{"paramsetid", "sta", "chan", "phase", "orid"},
))
