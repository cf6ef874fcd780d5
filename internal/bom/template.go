package bom

// VehicleConfig carries the vehicle attributes a project is created with.
// They drive the project name and the shape of the seeded teardown tree.
type VehicleConfig struct {
	Brand        string `json:"brand" validate:"required"`
	Model        string `json:"model" validate:"required"`
	Year         int    `json:"year" validate:"gte=0"`
	FuelType     string `json:"fuel_type"`
	TransType    string `json:"trans_type"`
	DriveType    string `json:"drive_type"`
	BodyStyle    string `json:"body_style"`
	SteeringSide string `json:"steering_side"`
}

// entry describes one template node before ids and levels are assigned.
type entry struct {
	name     string
	weight   float64
	material string
	quantity int
	children []entry
}

func grp(name string, children ...entry) entry {
	return entry{name: name, children: children}
}

func part(name string, weight float64, material string) entry {
	return entry{name: name, weight: weight, material: material}
}

func qty(s entry, n int) entry {
	s.quantity = n
	return s
}

// TeardownTemplate builds the standard vehicle teardown structure for the
// given configuration: combustion vs EV power unit, transmission internals
// by gearbox type, AWD drivetrain when applicable, body mass by style.
// Costs start at zero; weights, materials and quantities are reference
// values. newID supplies node ids so callers control id generation.
func TeardownTemplate(cfg VehicleConfig, newID func() string) *Node {
	ev := cfg.FuelType == "EV"

	var systems []entry

	if ev {
		systems = append(systems, grp("1.0 EV Motor & Power",
			grp("Traction Motor",
				part("Stator Core", 25000, "Steel (HSS)"),
				part("Copper Hairpins", 12000, "Copper"),
				part("Rotor Assy", 15000, ""),
			),
			grp("80kWh Battery Pack",
				qty(part("Battery Cells (2170)", 68, "Lithium-Ion"), 4000),
				part("BMS Module", 0, ""),
			),
		))
	} else {
		systems = append(systems, grp("1.0 Internal Combustion Engine",
			grp("1.1 Block & Heads",
				part("Engine Block Core", 42000, "Cast Iron"),
				part("Reluctor Ring (Crank)", 120, "Steel (HSS)"),
				grp("Balance Shafts Assy",
					part("Balance Gears", 800, "Cast Iron"),
					qty(part("Shaft Bearings", 50, ""), 4),
				),
				qty(part("Block Dowel Pins", 15, ""), 6),
				qty(part("Oil Gallery Plugs", 10, ""), 8),
				qty(part("Baffle Plates", 1200, "Steel (HSS)"), 2),
			),
			grp("1.2 Pistons & Connecting Rods",
				qty(grp("Piston Sets",
					part("Piston Body", 450, "Aluminum 6061"),
					part("Oil Ring Expander", 8, ""),
					qty(part("Compression Ring", 12, ""), 2),
				), 4),
				qty(grp("Connecting Rods",
					part("Rod Body", 600, "Steel (HSS)"),
					qty(part("Alignment Sleeves", 0, ""), 2),
					part("Rod Bearing Tabs", 0, ""),
				), 4),
			),
			grp("1.3 Valvetrain Detail",
				part("Cylinder Head Casting", 18000, "Aluminum 6061"),
				qty(part("Hydraulic Lash Adjusters", 120, ""), 16),
				qty(part("Roller Lifters", 85, ""), 16),
				qty(part("Valve Stem Seals", 0, "Rubber (EPDM)"), 16),
				qty(part("Valve Tip Caps", 0, "Steel (HSS)"), 16),
				qty(part("Valve Spring Seats", 0, ""), 16),
			),
			grp("1.4 Timing Logic",
				part("Timing Chain Dampers", 450, ""),
				qty(part("Chain Guide Rails", 600, ""), 2),
				part("VVT Cam Actuator", 1800, ""),
				part("VVT Solenoid", 300, ""),
				part("Timing Inspection Plug", 0, ""),
			),
		))
		systems = append(systems, grp("2.0 Intake & Fuel",
			grp("Air Induction",
				part("Intake Resonator", 0, "Polypropylene"),
				part("Helmholtz Chamber", 400, ""),
				part("IMRC Valve", 0, ""),
			),
			grp("Fuel Distribution",
				part("Fuel Pulsation Damper", 0, ""),
				qty(part("Injector Heat Insulators", 0, ""), 4),
				part("Purge Solenoid", 0, ""),
			),
		))
		systems = append(systems, grp("3.0 Exhaust System",
			grp("3.1 Manifold & Turbo",
				part("Exhaust Manifold", 8500, "Cast Iron"),
				part("Turbocharger Assy", 0, ""),
			),
			grp("3.2 Aftertreatment",
				part("Catalytic Converter", 4500, "Steel (HSS)"),
				qty(part("Oxygen Sensors", 0, ""), 2),
			),
		))
	}

	systems = append(systems, grp("4.0 Cooling System",
		grp("Heat Exchangers",
			part("Main Radiator", 6200, "Aluminum 6061"),
			part("Expansion Tank", 0, "Polypropylene"),
		),
		grp("Coolant Management",
			part("Electric Water Pump", 0, ""),
			part("Coolant Hoses (Main)", 0, "Rubber (EPDM)"),
		),
	))

	if !ev {
		systems = append(systems, grp("5.0 Lubrication System",
			part("Oil Pump Assy", 0, ""),
			part("Oil Cooler", 0, "Aluminum 6061"),
			part("Oil Pan", 2800, "Steel (HSS)"),
		))
	}

	systems = append(systems, grp("6.0 Electrical & Wire Harness",
		grp("Main Harness",
			part("Engine Harness", 4500, "Copper"),
			part("Body Harness", 12000, "Copper"),
		),
		grp("Control Modules",
			part("ECU/VCU", 0, ""),
			part("Fuse Box Assy", 0, ""),
		),
	))

	if cfg.TransType == "Manual" {
		systems = append(systems, grp("7.0 Transmission Assy",
			grp("Manual Internals",
				qty(part("Shift Fork Pads", 0, ""), 3),
				qty(part("Synchronizer Keys", 0, ""), 12),
				qty(part("Detent Ball & Spring", 0, ""), 6),
			),
		))
	} else {
		systems = append(systems, grp("7.0 Transmission Assy",
			grp("Auto Valve Body",
				part("Planetary Gear Set", 22000, ""),
				qty(part("Accumulator Pistons", 0, ""), 5),
			),
		))
	}

	if cfg.DriveType == "AWD" {
		systems = append(systems, grp("8.0 Drivetrain (AWD)",
			part("Active Transfer Case", 0, ""),
			part("Rear Differential", 25000, ""),
			qty(part("Differential Shims", 0, ""), 8),
		))
	}

	systems = append(systems, grp("9.0 Steering ("+cfg.SteeringSide+")",
		grp("Steering Rack Detail",
			part("Rack Guide Spring", 0, ""),
			part("Rack Adjuster Plug", 0, ""),
		),
		grp("Column Assembly",
			part("Spiral Cable (Clockspring)", 0, ""),
			part("Collapse Capsule", 0, ""),
		),
	))

	systems = append(systems, grp("10.0 Chassis & Suspension",
		grp("Front Suspension",
			qty(part("MacPherson Struts", 0, ""), 2),
			qty(part("Control Arms", 0, "Steel (HSS)"), 2),
		),
		grp("Rear Suspension",
			part("Multi-link Subframe", 0, "Steel (HSS)"),
			part("Anti-roll Bar", 4500, ""),
		),
	))

	systems = append(systems, grp("11.0 Performance Brakes",
		grp("Caliper Hardware",
			qty(part("Anti-rattle Clips", 0, ""), 8),
			qty(part("Caliper Dust Seals", 0, ""), 8),
		),
		part("Proportioning Valve", 0, ""),
	))

	systems = append(systems, grp("12.0 Wheels & Tires",
		qty(part("Alloy Wheels", 11500, "Aluminum 6061"), 4),
		qty(part("Rubber Tires", 9500, "Rubber (EPDM)"), 4),
	))

	biwWeight := 350000.0
	if cfg.BodyStyle != "Sedan" {
		biwWeight = 520000.0
	}
	systems = append(systems, grp("13.0 Body System ("+cfg.BodyStyle+")",
		part("Body Structure BIW", biwWeight, "Steel (HSS)"),
		qty(part("Sound Deadening Pads", 0, "Composite"), 12),
	))

	systems = append(systems, grp("15.0 Fastener Library",
		qty(part("E-Torx Bolt M10", 35, "Steel (HSS)"), 180),
		qty(part("Rivnut M8 Insert", 8, "Steel (HSS)"), 450),
	))

	root := grp(cfg.Brand+" "+cfg.Model, systems...)
	return materialize(root, 0, newID)
}

// materialize assigns ids, levels (strictly parent+1) and the metal-grade
// pricing flag while converting template entries into nodes.
func materialize(s entry, level int, newID func() string) *Node {
	n := NewNode(newID(), s.name, level)
	if s.material != "" {
		n.Material = s.material
	}
	if s.quantity > 0 {
		n.Quantity = s.quantity
	}
	n.MaterialCalcEnabled = IsMetalGrade(n.Material)
	for _, c := range s.children {
		n.Children = append(n.Children, materialize(c, level+1, newID))
	}
	return n
}
