package menu

// 內建菜單資料，對應 Dr. Donut 得來速的兩套菜單：
// small 為基準菜單，large 為別名密集、容易互相重疊的挑戰菜單。
//
// 尺寸同義詞表的宣告順序即比對優先順序：完整尺寸字在前、縮寫在後、
// "regular" 墊底，確保語句中同時出現明確尺寸字與 "regular"（品項名稱
// 的一部分）時以明確尺寸字為準。

var smallMenu = &Menu{
	Name: "Small Menu",
	Items: []MenuItem{
		{
			SKU:            "DON001",
			Name:           "Pumpkin Spice Iced Doughnut",
			Category:       "donuts",
			BasePrice:      1.29,
			Aliases:        []string{"pumpkin spice donut", "pumpkin donut", "ps donut", "pumpkin iced"},
			SizeVariations: map[string]float64{},
			Modifiers:      []string{},
		},
		{
			SKU:            "DON002",
			Name:           "Chocolate Iced Doughnut",
			Category:       "donuts",
			BasePrice:      1.09,
			Aliases:        []string{"chocolate donut", "choc donut", "chocolate glazed"},
			SizeVariations: map[string]float64{},
			Modifiers:      []string{"sprinkles"},
			ModifierSynonyms: SynonymTable{
				{"with sprinkles", "sprinkles"},
				{"sprinkled", "sprinkles"},
			},
		},
		{
			SKU:            "DON003",
			Name:           "Raspberry Filled Doughnut",
			Category:       "donuts",
			BasePrice:      1.09,
			Aliases:        []string{"raspberry donut", "raspberry filled", "rasp filled"},
			SizeVariations: map[string]float64{},
			Modifiers:      []string{},
		},
		{
			SKU:            "COF001",
			Name:           "Regular Brewed Coffee",
			Category:       "coffee",
			BasePrice:      1.79,
			Aliases:        []string{"coffee", "regular coffee", "brewed coffee", "black coffee"},
			SizeVariations: map[string]float64{"small": 0.0, "medium": 0.3, "large": 0.6},
			Modifiers:      []string{"cream", "sugar", "milk"},
			ModifierSynonyms: SynonymTable{
				{"with cream", "cream"},
				{"creamer", "cream"},
				{"sweet", "sugar"},
			},
		},
		{
			SKU:            "COF002",
			Name:           "Pumpkin Spice Latte",
			Category:       "coffee",
			BasePrice:      4.59,
			Aliases:        []string{"pumpkin spice latte", "psl", "pumpkin latte", "ps latte"},
			SizeVariations: map[string]float64{"small": 0.0, "medium": 0.5, "large": 1.0},
			Modifiers:      []string{"extra shot", "whip", "no whip", "almond milk", "oat milk"},
			ModifierSynonyms: SynonymTable{
				{"whipped cream", "whip"},
				{"no whipped cream", "no whip"},
			},
		},
	},
	SizeSynonyms: SynonymTable{
		{"small", "small"},
		{"sm", "small"},
		{"medium", "medium"},
		{"med", "medium"},
		{"large", "large"},
		{"lg", "large"},
		{"big", "large"},
		{"s", "small"},
		{"m", "medium"},
		{"l", "large"},
		{"regular", "small"},
	},
	DefaultSizes: map[string]string{
		"donuts": "regular",
		"coffee": "medium",
	},
}

var largeMenu = &Menu{
	Name: "Large Menu",
	Items: []MenuItem{
		// 甜甜圈
		{
			SKU:       "DON001",
			Name:      "Pumpkin Spice Iced Doughnut",
			Category:  "donuts",
			BasePrice: 1.29,
			Aliases: []string{"pumpkin spice donut", "pumpkin donut", "ps donut", "pumpkin iced",
				"pumpkin spice", "pumpkin glazed", "ps iced"},
			SizeVariations: map[string]float64{},
			Modifiers:      []string{},
		},
		{
			SKU:       "DON002",
			Name:      "Pumpkin Spice Cake Doughnut",
			Category:  "donuts",
			BasePrice: 1.29,
			Aliases: []string{"pumpkin cake donut", "pumpkin cake", "ps cake", "pumpkin spice cake",
				"cake donut pumpkin"},
			SizeVariations: map[string]float64{},
			Modifiers:      []string{},
		},
		{
			SKU:       "DON003",
			Name:      "Old Fashioned Doughnut",
			Category:  "donuts",
			BasePrice: 1.29,
			Aliases: []string{"old fashioned", "old fashioned donut", "old fashioned doughnut",
				"old fashion", "plain cake donut"},
			SizeVariations: map[string]float64{},
			Modifiers:      []string{},
		},
		{
			SKU:       "DON004",
			Name:      "Chocolate Iced Doughnut",
			Category:  "donuts",
			BasePrice: 1.09,
			Aliases: []string{"chocolate donut", "choc donut", "chocolate glazed", "chocolate iced",
				"choc iced", "chocolate", "choc"},
			SizeVariations: map[string]float64{},
			Modifiers:      []string{"sprinkles"},
			ModifierSynonyms: SynonymTable{
				{"with sprinkles", "sprinkles"},
				{"sprinkled", "sprinkles"},
				{"rainbow sprinkles", "sprinkles"},
				{"colored sprinkles", "sprinkles"},
			},
		},
		{
			SKU:       "DON005",
			Name:      "Raspberry Filled Doughnut",
			Category:  "donuts",
			BasePrice: 1.09,
			Aliases: []string{"raspberry donut", "raspberry filled", "rasp filled", "raspberry jelly",
				"raspberry jam", "rasp", "raspberry"},
			SizeVariations: map[string]float64{},
			Modifiers:      []string{},
		},
		{
			SKU:            "DON006",
			Name:           "Blueberry Cake Doughnut",
			Category:       "donuts",
			BasePrice:      1.09,
			Aliases:        []string{"blueberry donut", "blueberry cake", "blueberry", "blueberry cake donut"},
			SizeVariations: map[string]float64{},
			Modifiers:      []string{},
		},
		{
			SKU:       "DON007",
			Name:      "Strawberry Iced Doughnut with Sprinkles",
			Category:  "donuts",
			BasePrice: 1.09,
			Aliases: []string{"strawberry donut", "strawberry iced", "strawberry glazed", "strawberry",
				"strawberry with sprinkles", "strawberry sprinkled"},
			SizeVariations: map[string]float64{},
			Modifiers:      []string{"sprinkles"},
			ModifierSynonyms: SynonymTable{
				{"with sprinkles", "sprinkles"},
				{"sprinkled", "sprinkles"},
			},
		},
		{
			SKU:            "DON008",
			Name:           "Lemon Filled Doughnut",
			Category:       "donuts",
			BasePrice:      1.09,
			Aliases:        []string{"lemon donut", "lemon filled", "lemon jelly", "lemon jam", "lemon"},
			SizeVariations: map[string]float64{},
			Modifiers:      []string{},
		},
		{
			SKU:            "DON009",
			Name:           "Doughnut Holes",
			Category:       "donuts",
			BasePrice:      3.99,
			Aliases:        []string{"donut holes", "donut holes dozen", "holes", "munchkins", "donut munchkins"},
			SizeVariations: map[string]float64{},
			Modifiers:      []string{},
		},

		// 咖啡與飲品
		{
			SKU:            "COF001",
			Name:           "Pumpkin Spice Coffee",
			Category:       "coffee",
			BasePrice:      2.59,
			Aliases:        []string{"pumpkin spice coffee", "ps coffee", "pumpkin coffee", "pumpkin brew"},
			SizeVariations: map[string]float64{"small": 0.0, "medium": 0.3, "large": 0.6},
			Modifiers:      []string{"cream", "sugar", "milk", "extra shot"},
			ModifierSynonyms: SynonymTable{
				{"with cream", "cream"},
				{"creamer", "cream"},
				{"sweet", "sugar"},
			},
		},
		{
			SKU:            "COF002",
			Name:           "Pumpkin Spice Latte",
			Category:       "coffee",
			BasePrice:      4.59,
			Aliases:        []string{"pumpkin spice latte", "psl", "pumpkin latte", "ps latte"},
			SizeVariations: map[string]float64{"small": 0.0, "medium": 0.5, "large": 1.0},
			Modifiers:      []string{"extra shot", "whip", "no whip", "almond milk", "oat milk"},
			ModifierSynonyms: SynonymTable{
				{"whipped cream", "whip"},
				{"no whipped cream", "no whip"},
			},
		},
		{
			SKU:       "COF003",
			Name:      "Regular Brewed Coffee",
			Category:  "coffee",
			BasePrice: 1.79,
			Aliases: []string{"coffee", "regular coffee", "brewed coffee", "black coffee", "regular",
				"house coffee", "drip coffee"},
			SizeVariations: map[string]float64{"small": 0.0, "medium": 0.3, "large": 0.6},
			Modifiers:      []string{"cream", "sugar", "milk"},
			ModifierSynonyms: SynonymTable{
				{"with cream", "cream"},
				{"creamer", "cream"},
				{"sweet", "sugar"},
			},
		},
		{
			SKU:            "COF004",
			Name:           "Decaf Brewed Coffee",
			Category:       "coffee",
			BasePrice:      1.79,
			Aliases:        []string{"decaf", "decaf coffee", "decaffeinated", "decaf brewed"},
			SizeVariations: map[string]float64{"small": 0.0, "medium": 0.3, "large": 0.6},
			Modifiers:      []string{"cream", "sugar", "milk"},
			ModifierSynonyms: SynonymTable{
				{"with cream", "cream"},
				{"creamer", "cream"},
				{"sweet", "sugar"},
			},
		},
		{
			SKU:            "COF005",
			Name:           "Latte",
			Category:       "coffee",
			BasePrice:      3.49,
			Aliases:        []string{"latte", "cafe latte", "coffee latte"},
			SizeVariations: map[string]float64{"small": 0.0, "medium": 0.4, "large": 0.8},
			Modifiers:      []string{"extra shot", "decaf", "almond milk", "oat milk", "skim milk", "whole milk"},
			ModifierSynonyms: SynonymTable{
				{"almond", "almond milk"},
				{"oat", "oat milk"},
				{"skim", "skim milk"},
			},
		},
		{
			SKU:            "COF006",
			Name:           "Cappuccino",
			Category:       "coffee",
			BasePrice:      3.49,
			Aliases:        []string{"cappuccino", "capp", "cappucino"},
			SizeVariations: map[string]float64{"small": 0.0, "medium": 0.4, "large": 0.8},
			Modifiers:      []string{"extra shot", "decaf", "almond milk", "oat milk", "skim milk"},
			ModifierSynonyms: SynonymTable{
				{"almond", "almond milk"},
				{"oat", "oat milk"},
				{"skim", "skim milk"},
			},
		},
		{
			SKU:            "COF007",
			Name:           "Caramel Macchiato",
			Category:       "coffee",
			BasePrice:      3.49,
			Aliases:        []string{"caramel macchiato", "caramel mac", "caramel mach", "macchiato"},
			SizeVariations: map[string]float64{"small": 0.0, "medium": 0.4, "large": 0.8},
			Modifiers:      []string{"extra shot", "decaf", "almond milk", "oat milk", "extra caramel"},
			ModifierSynonyms: SynonymTable{
				{"almond", "almond milk"},
				{"oat", "oat milk"},
			},
		},
		{
			SKU:            "COF008",
			Name:           "Mocha Latte",
			Category:       "coffee",
			BasePrice:      3.49,
			Aliases:        []string{"mocha", "mocha latte", "chocolate latte", "choc latte"},
			SizeVariations: map[string]float64{"small": 0.0, "medium": 0.4, "large": 0.8},
			Modifiers:      []string{"extra shot", "decaf", "almond milk", "oat milk", "whip", "no whip"},
			ModifierSynonyms: SynonymTable{
				{"almond", "almond milk"},
				{"oat", "oat milk"},
				{"whipped cream", "whip"},
			},
		},
		{
			SKU:            "COF009",
			Name:           "Caramel Mocha Latte",
			Category:       "coffee",
			BasePrice:      3.49,
			Aliases:        []string{"caramel mocha", "caramel mocha latte", "caramel choc latte"},
			SizeVariations: map[string]float64{"small": 0.0, "medium": 0.4, "large": 0.8},
			Modifiers:      []string{"extra shot", "decaf", "almond milk", "oat milk", "whip", "no whip"},
			ModifierSynonyms: SynonymTable{
				{"almond", "almond milk"},
				{"oat", "oat milk"},
				{"whipped cream", "whip"},
			},
		},
	},
	SizeSynonyms: SynonymTable{
		{"small", "small"},
		{"sm", "small"},
		{"short", "small"},
		{"medium", "medium"},
		{"med", "medium"},
		{"grande", "medium"},
		{"large", "large"},
		{"lg", "large"},
		{"big", "large"},
		{"venti", "large"},
		{"extra large", "large"},
		{"xl", "large"},
		{"x-large", "large"},
		{"s", "small"},
		{"m", "medium"},
		{"l", "large"},
		{"regular", "small"},
	},
	DefaultSizes: map[string]string{
		"donuts": "regular",
		"coffee": "medium",
	},
}
