package profile

// Builtin returns the registry of boards known to work, in the order they
// must be tried.
func Builtin() *Registry {
	return NewRegistry(builtin...)
}

func board(vendor, product, version string, fanReg, tempReg, off, auto byte, manual bool) Profile {
	return Profile{
		Vendor:              vendor,
		Product:             product,
		Version:             version,
		FanRegister:         fanReg,
		TemperatureRegister: tempReg,
		FanOff:              off,
		FanAuto:             auto,
		ManualMode:          manual,
	}
}

var builtin = []Profile{
	// AOA110
	board("Acer", "AOA110", "v0.3109", 0x55, 0x58, 0x1f, 0x00, false),
	board("Acer", "AOA110", "v0.3114", 0x55, 0x58, 0x1f, 0x00, false),
	board("Acer", "AOA110", "v0.3301", 0x55, 0x58, 0xaf, 0x00, false),
	board("Acer", "AOA110", "v0.3304", 0x55, 0x58, 0xaf, 0x00, false),
	board("Acer", "AOA110", "v0.3305", 0x55, 0x58, 0xaf, 0x00, false),
	board("Acer", "AOA110", "v0.3307", 0x55, 0x58, 0xaf, 0x00, false),
	board("Acer", "AOA110", "v0.3308", 0x55, 0x58, 0x21, 0x00, false),
	board("Acer", "AOA110", "v0.3309", 0x55, 0x58, 0x21, 0x00, false),
	board("Acer", "AOA110", "v0.3310", 0x55, 0x58, 0x21, 0x00, false),
	// AOA150
	board("Acer", "AOA150", "v0.3114", 0x55, 0x58, 0x1f, 0x00, false),
	board("Acer", "AOA150", "v0.3301", 0x55, 0x58, 0x20, 0x00, false),
	board("Acer", "AOA150", "v0.3304", 0x55, 0x58, 0x20, 0x00, false),
	board("Acer", "AOA150", "v0.3305", 0x55, 0x58, 0x20, 0x00, false),
	board("Acer", "AOA150", "v0.3307", 0x55, 0x58, 0x20, 0x00, false),
	board("Acer", "AOA150", "v0.3308", 0x55, 0x58, 0x20, 0x00, false),
	board("Acer", "AOA150", "v0.3309", 0x55, 0x58, 0x20, 0x00, false),
	board("Acer", "AOA150", "v0.3310", 0x55, 0x58, 0x20, 0x00, false),
	// LT1005u
	board("Acer", "LT-10Q", "v0.3310", 0x55, 0x58, 0x20, 0x00, false),
	// Acer 1410
	board("Acer", "Aspire 1410", "v0.3108", 0x55, 0x58, 0x9e, 0x00, false),
	board("Acer", "Aspire 1410", "v0.3113", 0x55, 0x58, 0x9e, 0x00, false),
	board("Acer", "Aspire 1410", "v0.3115", 0x55, 0x58, 0x9e, 0x00, false),
	board("Acer", "Aspire 1410", "v0.3117", 0x55, 0x58, 0x9e, 0x00, false),
	board("Acer", "Aspire 1410", "v0.3119", 0x55, 0x58, 0x9e, 0x00, false),
	board("Acer", "Aspire 1410", "v0.3120", 0x55, 0x58, 0x9e, 0x00, false),
	board("Acer", "Aspire 1410", "v1.3204", 0x55, 0x58, 0x9e, 0x00, false),
	board("Acer", "Aspire 1410", "v1.3303", 0x55, 0x58, 0x9e, 0x00, false),
	board("Acer", "Aspire 1410", "v1.3308", 0x55, 0x58, 0x9e, 0x00, false),
	board("Acer", "Aspire 1410", "v1.3310", 0x55, 0x58, 0x9e, 0x00, false),
	board("Acer", "Aspire 1410", "v1.3314", 0x55, 0x58, 0x9e, 0x00, false),
	// Acer 1810xx
	board("Acer", "Aspire 1810TZ", "v0.3108", 0x55, 0x58, 0x9e, 0x00, false),
	board("Acer", "Aspire 1810T", "v0.3108", 0x55, 0x58, 0x9e, 0x00, false),
	board("Acer", "Aspire 1810TZ", "v0.3113", 0x55, 0x58, 0x9e, 0x00, false),
	board("Acer", "Aspire 1810T", "v0.3113", 0x55, 0x58, 0x9e, 0x00, false),
	board("Acer", "Aspire 1810TZ", "v0.3115", 0x55, 0x58, 0x9e, 0x00, false),
	board("Acer", "Aspire 1810T", "v0.3115", 0x55, 0x58, 0x9e, 0x00, false),
	board("Acer", "Aspire 1810TZ", "v0.3117", 0x55, 0x58, 0x9e, 0x00, false),
	board("Acer", "Aspire 1810T", "v0.3117", 0x55, 0x58, 0x9e, 0x00, false),
	board("Acer", "Aspire 1810TZ", "v0.3119", 0x55, 0x58, 0x9e, 0x00, false),
	board("Acer", "Aspire 1810T", "v0.3119", 0x55, 0x58, 0x9e, 0x00, false),
	board("Acer", "Aspire 1810TZ", "v0.3120", 0x55, 0x58, 0x9e, 0x00, false),
	board("Acer", "Aspire 1810T", "v0.3120", 0x55, 0x58, 0x9e, 0x00, false),
	board("Acer", "Aspire 1810TZ", "v1.3204", 0x55, 0x58, 0x9e, 0x00, false),
	board("Acer", "Aspire 1810T", "v1.3204", 0x55, 0x58, 0x9e, 0x00, false),
	board("Acer", "Aspire 1810TZ", "v1.3303", 0x55, 0x58, 0x9e, 0x00, false),
	board("Acer", "Aspire 1810T", "v1.3303", 0x55, 0x58, 0x9e, 0x00, false),
	board("Acer", "Aspire 1810TZ", "v1.3308", 0x55, 0x58, 0x9e, 0x00, false),
	board("Acer", "Aspire 1810T", "v1.3308", 0x55, 0x58, 0x9e, 0x00, false),
	board("Acer", "Aspire 1810TZ", "v1.3310", 0x55, 0x58, 0x9e, 0x00, false),
	board("Acer", "Aspire 1810T", "v1.3310", 0x55, 0x58, 0x9e, 0x00, false),
	board("Acer", "Aspire 1810TZ", "v1.3314", 0x55, 0x58, 0x9e, 0x00, false),
	board("Acer", "Aspire 1810T", "v1.3314", 0x55, 0x58, 0x9e, 0x00, false),
	// Acer 5755G
	board("Acer", "Aspire 5755G", "V1.20", 0xab, 0xb4, 0x00, 0x08, false),
	board("Acer", "Aspire 5755G", "V1.21", 0xab, 0xb3, 0x00, 0x08, false),
	// Acer 521
	board("Acer", "AO521", "V1.11", 0x55, 0x58, 0x1f, 0x00, false),
	// Acer 531
	board("Acer", "AO531h", "v0.3104", 0x55, 0x58, 0x20, 0x00, false),
	board("Acer", "AO531h", "v0.3201", 0x55, 0x58, 0x20, 0x00, false),
	board("Acer", "AO531h", "v0.3304", 0x55, 0x58, 0x20, 0x00, false),
	// Acer 751
	board("Acer", "AO751h", "V0.3206", 0x55, 0x58, 0x21, 0x00, false),
	board("Acer", "AO751h", "V0.3212", 0x55, 0x58, 0x21, 0x00, false),
	// Acer 753
	board("Acer", "Aspire One 753", "V1.24", 0x93, 0xac, 0x14, 0x04, true),
	// Acer 1825
	board("Acer", "Aspire 1825PTZ", "V1.3118", 0x55, 0x58, 0x9e, 0x00, false),
	board("Acer", "Aspire 1825PTZ", "V1.3127", 0x55, 0x58, 0x9e, 0x00, false),
	// Acer Extensa 5420
	board("Acer", "Extensa 5420", "V1.17", 0x93, 0xac, 0x14, 0x04, true),
	// Acer Aspire 5315
	board("Acer", "Aspire 5315", "V1.19", 0x93, 0xac, 0x14, 0x04, true),
	// Acer Aspire 5739
	board("Acer", "Aspire 5739G", "V1.3311", 0x55, 0x58, 0x20, 0x00, false),
	// Acer TravelMate 7730
	board("Acer", "TravelMate 7730G", "v0.3509", 0x55, 0x58, 0xaf, 0x00, false),
	// Acer TravelMate TM8573T
	board("Acer", "TM8573T", "V1.13", 0x93, 0xa8, 0x14, 0x04, true),
	// Gateway
	board("Gateway", "AOA110", "v0.3103", 0x55, 0x58, 0x21, 0x00, false),
	board("Gateway", "AOA150", "v0.3103", 0x55, 0x58, 0x20, 0x00, false),
	board("Gateway", "LT31", "v1.3103", 0x55, 0x58, 0x9e, 0x00, false),
	board("Gateway", "LT31", "v1.3201", 0x55, 0x58, 0x9e, 0x00, false),
	board("Gateway", "LT31", "v1.3302", 0x55, 0x58, 0x9e, 0x00, false),
	board("Gateway", "LT31", "v1.3303t", 0x55, 0x58, 0x9e, 0x00, false),
	// Packard Bell
	board("Packard Bell", "DOA150", "v0.3104", 0x55, 0x58, 0x21, 0x00, false),
	board("Packard Bell", "DOA150", "v0.3105", 0x55, 0x58, 0x20, 0x00, false),
	board("Packard Bell", "AOA110", "v0.3105", 0x55, 0x58, 0x21, 0x00, false),
	board("Packard Bell", "AOA150", "v0.3105", 0x55, 0x58, 0x20, 0x00, false),
	board("Packard Bell", "ENBFT", "V1.3118", 0x55, 0x58, 0x9e, 0x00, false),
	board("Packard Bell", "ENBFT", "V1.3127", 0x55, 0x58, 0x9e, 0x00, false),
	board("Packard Bell", "DOTMU", "v1.3303", 0x55, 0x58, 0x9e, 0x00, false),
	board("Packard Bell", "DOTMU", "v0.3120", 0x55, 0x58, 0x9e, 0x00, false),
	board("Packard Bell", "DOTMU", "v0.3108", 0x55, 0x58, 0x9e, 0x00, false),
	board("Packard Bell", "DOTMU", "v0.3113", 0x55, 0x58, 0x9e, 0x00, false),
	board("Packard Bell", "DOTMU", "v0.3115", 0x55, 0x58, 0x9e, 0x00, false),
	board("Packard Bell", "DOTMU", "v0.3117", 0x55, 0x58, 0x9e, 0x00, false),
	board("Packard Bell", "DOTMU", "v0.3119", 0x55, 0x58, 0x9e, 0x00, false),
	board("Packard Bell", "DOTMU", "v1.3204", 0x55, 0x58, 0x9e, 0x00, false),
	board("Packard Bell", "DOTMA", "v1.3201", 0x55, 0x58, 0x9e, 0x00, false),
	board("Packard Bell", "DOTMA", "v1.3302", 0x55, 0x58, 0x9e, 0x00, false),
	board("Packard Bell", "DOTMA", "v1.3303t", 0x55, 0x58, 0x9e, 0x00, false),
	board("Packard Bell", "DOTVR46", "v1.3308", 0x55, 0x58, 0x9e, 0x00, false),
}
