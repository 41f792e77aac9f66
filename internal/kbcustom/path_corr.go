package kbcustom

import "github.com/tuannm99/novakb/internal/record"

// PathCorr holds path correction parameters.
var PathCorr = register(record.MustSchema("path_corr",
	[]record.Column{
		record.Long("magyieldid", idLimit, minLong),
		record.Double("pspread1", "%1.3f", nan),
		record.Double("dpspread1", "%1.3f", -1),
		record.Double("pspread2", "%1.3f", nan),
		record.Double("dpspread2", "%1.3f", -1),
		record.Double("xcross", "%1.4f", nan),
		record.Double("dxcross", "%1.4f", -1),
		record.Double("xtrans", "%1.3f", nan),
		record.Double("dxtrans", "%1.3f", -1),
		record.Double("q", "%1.2f", -1),
		record.Double("delq", "%1.3f", -1),
		record.Long("tomoid", idLimit, -1),
		record.Double("vphase", "%1.2f", nan),
		record.Double("nfieldlim", "%1.4f", nan),
		record.Double("dmin", "%1.4f", -1),
		record.Double("dmax", "%1.4f", -1),
		record.String("auth", 20),
		record.Long("commid", idLimit, -1),
	},
	[]string{"magyieldid"},
	nil,
))
