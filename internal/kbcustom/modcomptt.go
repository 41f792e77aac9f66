package kbcustom

import "github.com/tuannm99/novakb/internal/record"

const sci = "%22.15e"

// Modcomptt holds model travel-time components.
var Modcomptt = register(record.MustSchema("modcomptt",
	[]record.Column{
		record.Long("mcttid", idLimit, minLong),
		record.Long("predttid", idLimit, minLong),
		record.String("modname", 60).WithNA("-"),
		record.String("regname", 60),
		record.Double("model_tt", sci, nan),
		record.Double("model_unc_tt", sci, nan),
		record.Double("base_tt", sci, nan),
		record.Double("base_unc_tt", sci, -1),
		record.Double("path_corr_tt", sci, nan),
		record.Double("path_unc_tt", sci, nan),
		record.Double("d3_corr_tt", sci, nan),
		record.Double("d3_unc_tt", sci, -1),
		record.Double("ellip_corr_tt", sci, -999),
		record.Double("elev_corr_tt", sci, -999),
		record.Double("bulk_corr_tt", sci, -1),
		record.Double("dtt_dlon", sci, -999),
		record.Double("dtt_dlat", sci, nan),
		record.Double("dtt_dz", sci, -999),
		record.Double("blendweight", sci, nan),
	},
	[]string{"mcttid"},
	[]string{"predttid", "regname"},
))
