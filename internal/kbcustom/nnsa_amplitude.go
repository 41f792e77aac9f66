package kbcustom

import "github.com/tuannm99/novakb/internal/record"

// NnsaAmplitude holds amplitude measurements taken in a window.
var NnsaAmplitude = register(record.MustSchema("nnsa_amplitude",
	[]record.Column{
		record.Long("ampid", idLimit, minLong),
		record.Long("windowid", idLimit, minLong),
		record.Double("amp", "%1.2f", nan),
		record.Double("delamp", "%1.2f", -1),
		record.Double("f_t_value", "%1.2f", nan),
		record.Double("f_t_del", "%1.2f", -1),
		record.String("f_t_type", 4),
		record.Double("f_t_low", "%1.2f", nan),
		record.Double("f_t_hi", "%1.2f", nan),
		record.String("units", 15),
		record.String("meastype", 12),
		record.Long("corrid", idLimit, -1),
		record.String("corrname", 32).WithNA("-"),
		record.String("auth", 20),
	},
	[]string{"ampid"},
	[]string{"windowid", "f_t_type", "f_t_low", "f_t_hi", "meastype", "corrid"},
))
