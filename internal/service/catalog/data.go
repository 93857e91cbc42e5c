package catalog

import "balaji-storefront/internal/domain"

func price(v int64) *int64 { return &v }

var builtinCategories = []domain.Category{
	{ID: "lighting", Name: "Lighting", Icon: "Lightbulb", Description: "LED bulbs, tube lights, decorative lights", ProductCount: 156, Image: "https://images.unsplash.com/photo-1565814329452-e1efa11c5b89?w=400"},
	{ID: "wiring", Name: "Wiring & Cables", Icon: "Cable", Description: "Electrical wires, cables, conduits", ProductCount: 89, Image: "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=400"},
	{ID: "switches", Name: "Switches & Sockets", Icon: "ToggleRight", Description: "Modular switches, plugs, sockets", ProductCount: 234, Image: "https://images.unsplash.com/photo-1558089687-f282ffcbc126?w=400"},
	{ID: "fans", Name: "Fans & Cooling", Icon: "Fan", Description: "Ceiling fans, exhaust fans, coolers", ProductCount: 67, Image: "https://images.unsplash.com/photo-1635048424329-a9bfb146d7aa?w=400"},
	{ID: "appliances", Name: "Home Appliances", Icon: "Home", Description: "Geysers, heaters, kitchen appliances", ProductCount: 145, Image: "https://images.unsplash.com/photo-1556909114-f6e7ad7d3136?w=400"},
	{ID: "tools", Name: "Tools & Equipment", Icon: "Wrench", Description: "Testers, multimeters, hand tools", ProductCount: 78, Image: "https://images.unsplash.com/photo-1581092160562-40aa08e78837?w=400"},
}

var builtinProducts = []domain.Product{
	{
		ID:            1,
		Name:          "Philips 12W LED Bulb Pack of 4",
		Description:   "Energy-efficient LED bulbs with 15000 hours lifespan. Cool daylight 6500K color temperature for bright illumination.",
		Price:         599,
		OriginalPrice: price(799),
		Image:         "https://images.unsplash.com/photo-1565814329452-e1efa11c5b89?w=500",
		Category:      "lighting",
		Rating:        4.5,
		Reviews:       2341,
		InStock:       true,
		Featured:      true,
		Badge:         domain.BadgeSale,
		Specs: map[string]string{
			"Wattage":           "12W",
			"Lumens":            "1200",
			"Color Temperature": "6500K",
			"Lifespan":          "15000 hours",
			"Voltage":           "220-240V",
		},
	},
	{
		ID:            2,
		Name:          "Havells 1200mm Ceiling Fan",
		Description:   "Premium ceiling fan with powerful motor and aerodynamic blades for maximum air delivery.",
		Price:         2499,
		OriginalPrice: price(3199),
		Image:         "https://images.unsplash.com/photo-1635048424329-a9bfb146d7aa?w=500",
		Category:      "fans",
		Rating:        4.7,
		Reviews:       1876,
		InStock:       true,
		Featured:      true,
		Badge:         domain.BadgeHot,
		Specs: map[string]string{
			"Sweep Size":   "1200mm",
			"Speed":        "380 RPM",
			"Air Delivery": "230 CMM",
			"Power":        "72W",
			"Warranty":     "2 Years",
		},
	},
	{
		ID:          3,
		Name:        "Anchor Roma 10A Switch Set",
		Description: "6-in-1 modular switch set with elegant design and superior build quality. ISI marked for safety.",
		Price:       849,
		Image:       "https://images.unsplash.com/photo-1558089687-f282ffcbc126?w=500",
		Category:    "switches",
		Rating:      4.3,
		Reviews:     945,
		InStock:     true,
		Featured:    true,
		Specs: map[string]string{
			"Rating":   "10A, 250V",
			"Material": "Polycarbonate",
			"Modules":  "6",
			"Warranty": "1 Year",
		},
	},
	{
		ID:            4,
		Name:          "Finolex FR Cable 2.5 sqmm (90m)",
		Description:   "Flame retardant copper wire with PVC insulation. Ideal for house wiring applications.",
		Price:         4299,
		OriginalPrice: price(4999),
		Image:         "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=500",
		Category:      "wiring",
		Rating:        4.8,
		Reviews:       3210,
		InStock:       true,
		Badge:         domain.BadgeSale,
		Specs: map[string]string{
			"Cross Section": "2.5 sqmm",
			"Length":        "90 meters",
			"Conductor":     "Electrolytic Copper",
			"Insulation":    "FR PVC",
			"Voltage Grade": "1100V",
		},
	},
	{
		ID:          5,
		Name:        "Crompton Digital Multimeter",
		Description: "Professional grade digital multimeter with auto-ranging and backlit LCD display.",
		Price:       1599,
		Image:       "https://images.unsplash.com/photo-1581092160562-40aa08e78837?w=500",
		Category:    "tools",
		Rating:      4.6,
		Reviews:     567,
		InStock:     true,
		Featured:    true,
		Badge:       domain.BadgeNew,
		Specs: map[string]string{
			"DC Voltage": "0.1mV - 1000V",
			"AC Voltage": "0.1mV - 750V",
			"Resistance": "0.1Ω - 40MΩ",
			"Display":    "LCD with Backlight",
			"Battery":    "9V",
		},
	},
	{
		ID:            6,
		Name:          "Bajaj Instant Water Heater 3L",
		Description:   "Compact instant water heater with titanium armored heating element and multi-layer safety.",
		Price:         3999,
		OriginalPrice: price(4599),
		Image:         "https://images.unsplash.com/photo-1556909114-f6e7ad7d3136?w=500",
		Category:      "appliances",
		Rating:        4.4,
		Reviews:       1234,
		InStock:       true,
		Badge:         domain.BadgeSale,
		Specs: map[string]string{
			"Capacity":        "3 Liters",
			"Power":           "3000W",
			"Heating Element": "Titanium Armored",
			"Thermostat":      "Capillary Type",
			"Warranty":        "2 Years",
		},
	},
	{
		ID:            7,
		Name:          "Syska LED Strip Light 5m",
		Description:   "Flexible RGB LED strip with remote control. Perfect for decoration and ambient lighting.",
		Price:         899,
		OriginalPrice: price(1199),
		Image:         "https://images.unsplash.com/photo-1558591710-4b4a1ae0f04d?w=500",
		Category:      "lighting",
		Rating:        4.2,
		Reviews:       789,
		InStock:       true,
		Badge:         domain.BadgeSale,
		Specs: map[string]string{
			"Length":   "5 meters",
			"LED Type": "SMD 5050",
			"Colors":   "RGB + White",
			"Control":  "IR Remote",
			"Voltage":  "12V DC",
		},
	},
	{
		ID:          8,
		Name:        "Legrand 16A Power Strip",
		Description: "4+1 universal sockets with surge protection and master switch. 2m cord length.",
		Price:       1249,
		Image:       "https://images.unsplash.com/photo-1544724569-5f546fd6f2b5?w=500",
		Category:    "switches",
		Rating:      4.5,
		Reviews:     456,
		InStock:     true,
		Specs: map[string]string{
			"Sockets":     "4 Universal + 1 USB",
			"Rating":      "16A, 250V",
			"Cord Length": "2 meters",
			"Protection":  "Surge + Spike",
			"Material":    "Fire Retardant ABS",
		},
	},
	{
		ID:            9,
		Name:          "Orient Electric Wall Fan",
		Description:   "High-speed wall mounted fan with pivoting head and thermal overload protection.",
		Price:         1899,
		OriginalPrice: price(2299),
		Image:         "https://images.unsplash.com/photo-1617375407361-9815e4ee8c30?w=500",
		Category:      "fans",
		Rating:        4.3,
		Reviews:       678,
		InStock:       true,
		Badge:         domain.BadgeHot,
		Specs: map[string]string{
			"Sweep Size":  "400mm",
			"Speed":       "1350 RPM",
			"Power":       "55W",
			"Oscillation": "90°",
			"Warranty":    "2 Years",
		},
	},
	{
		ID:          10,
		Name:        "Polycab Industrial MCB 32A",
		Description: "Triple pole miniature circuit breaker with 10kA breaking capacity.",
		Price:       899,
		Image:       "https://images.unsplash.com/photo-1621905252507-b35492cc74b4?w=500",
		Category:    "wiring",
		Rating:      4.7,
		Reviews:     234,
		InStock:     true,
		Badge:       domain.BadgeNew,
		Specs: map[string]string{
			"Poles":             "Triple Pole",
			"Rating":            "32A",
			"Breaking Capacity": "10kA",
			"Curve":             "C",
			"Standard":          "IS/IEC 60898",
		},
	},
	{
		ID:          11,
		Name:        "Wipro Smart LED Bulb",
		Description: "WiFi enabled smart bulb with 16 million colors. Works with Alexa and Google Home.",
		Price:       799,
		Image:       "https://images.unsplash.com/photo-1550009158-9ebf69173e03?w=500",
		Category:    "lighting",
		Rating:      4.4,
		Reviews:     1567,
		InStock:     true,
		Featured:    true,
		Badge:       domain.BadgeNew,
		Specs: map[string]string{
			"Wattage":       "9W",
			"Connectivity":  "WiFi 2.4GHz",
			"Colors":        "16 Million",
			"Voice Control": "Alexa, Google",
			"App":           "Wipro Smart",
		},
	},
	{
		ID:            12,
		Name:          "V-Guard Stabilizer 5KVA",
		Description:   "Mainline voltage stabilizer for complete home protection. Digital display with time delay.",
		Price:         8999,
		OriginalPrice: price(10499),
		Image:         "https://images.unsplash.com/photo-1621905251918-48416bd8575a?w=500",
		Category:      "appliances",
		Rating:        4.6,
		Reviews:       892,
		InStock:       true,
		Badge:         domain.BadgeSale,
		Specs: map[string]string{
			"Capacity":    "5 KVA",
			"Input Range": "140V - 280V",
			"Output":      "220V ± 5%",
			"Display":     "Digital LED",
			"Warranty":    "3 Years",
		},
	},
}
