package kbcustom

import "github.com/tuannm99/novakb/internal/record"

// PredictSh holds predicted slownesses and their components.
var PredictSh = register(record.MustSchema("predict_sh",
	[]record.Column{
		record.Long("predshid", idLimit, minLong),
		record.Long("shcorrsurfid", idLimit, minLong),
		record.Long("orid", idLimit, minLong),
		record.Long("arid", idLimit, minLong),
		record.String("modname", 60).WithNA("-"),
		record.String("regname", 60).WithNA("-"),
		record.Double("model_sh", sci, nan),
		record.Double("model_unc_sh", sci, nan),
		record.Double("base_sh", sci, -1),
		record.Double("base_unc_sh", sci, nan),
		record.Double("path_corr_sh", sci, nan),
		record.Double("path_unc_sh", sci, -1),
		record.Double("d3_corr_sh", sci, -999),
		record.Double("d3_unc_sh", sci, nan),
		record.Double("bulk_corr_sh", sci, -999),
		record.Double("jhd_corr_sh", sci, -999),
		record.Double("total_unc_sh", sci, nan),
		record.Double("dsh_dlon", sci, -999),
		record.Double("dsh_dlat", sci, -999),
		record.Double("dsh_dz", sci, nan),
		record.Double("weight", sci, nan),
		record.String("err_code", 30),
	},
	[]string{"predshid"},
	[]string{"shcorrsurfid", "orid", "arid"},
))
