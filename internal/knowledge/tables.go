package knowledge

import "alcyxob/fitness-planner/internal/domain"

// Default returns the built-in tables. Every call returns a fresh copy that callers may mutate.
func Default() *Static {
	return &Static{
		Exercises:    defaultExercises(),
		Warmups:      defaultWarmups(),
		Cooldowns:    defaultCooldowns(),
		Meals:        defaultMeals(),
		Palettes:     defaultPalettes(),
		Replacements: defaultReplacements(),
		Recovery:     defaultRecovery(),
		FoodRules:    defaultFoodRules(),
		Placeholders: defaultPlaceholders(),
		Equipment:    defaultUnavailableEquipment(),
	}
}

var recoveryMoves = []string{"Brisk Walk", "Cat-Cow", "World's Greatest Stretch", "Hip Flexor Stretch", "Thoracic Rotation", "Child's Pose", "Dead Bug"}

func defaultExercises() map[string]map[EquipmentTier][]string {
	return map[string]map[EquipmentTier][]string{
		FocusPush: {
			TierBodyweight: {"Push-Up", "Incline Push-Up", "Decline Push-Up", "Pike Push-Up", "Diamond Push-Up", "Bench Dip", "Plank Shoulder Tap", "Archer Push-Up"},
			TierHome:       {"Dumbbell Bench Press", "Dumbbell Shoulder Press", "Incline Dumbbell Press", "Push-Up", "Dumbbell Floor Press", "Arnold Press", "Dumbbell Lateral Raise", "Band Triceps Pushdown"},
			TierGym:        {"Barbell Bench Press", "Overhead Press", "Incline Dumbbell Press", "Cable Fly", "Machine Chest Press", "Dumbbell Lateral Raise", "Cable Triceps Pushdown", "Weighted Dip"},
		},
		FocusPull: {
			TierBodyweight: {"Inverted Row", "Towel Row", "Superman Hold", "Prone Y-T-W Raise", "Doorframe Row", "Reverse Snow Angel", "Prone Swimmer"},
			TierHome:       {"One-Arm Dumbbell Row", "Chest-Supported Dumbbell Row", "Band Pull-Apart", "Dumbbell Pullover", "Renegade Row", "Kettlebell High Pull", "Dumbbell Hammer Curl", "Band Face Pull"},
			TierGym:        {"Pull-Up", "Barbell Row", "Lat Pulldown", "Seated Cable Row", "Face Pull", "Chest-Supported Dumbbell Row", "Barbell Curl"},
		},
		FocusLegs: {
			TierBodyweight: {"Bodyweight Squat", "Reverse Lunge", "Bulgarian Split Squat", "Glute Bridge", "Single-Leg Romanian Deadlift", "Step-Up", "Wall Sit", "Calf Raise", "Cossack Squat"},
			TierHome:       {"Goblet Squat", "Dumbbell Romanian Deadlift", "Dumbbell Walking Lunge", "Kettlebell Swing", "Dumbbell Step-Up", "Bulgarian Split Squat", "Dumbbell Calf Raise", "Dumbbell Hip Thrust"},
			TierGym:        {"Barbell Back Squat", "Romanian Deadlift", "Leg Press", "Walking Lunge", "Leg Curl Machine", "Hip Thrust", "Standing Calf Raise", "Front Squat"},
		},
		FocusUpper: {
			TierBodyweight: {"Push-Up", "Inverted Row", "Pike Push-Up", "Towel Row", "Bench Dip", "Prone Y-T-W Raise", "Plank Shoulder Tap"},
			TierHome:       {"Dumbbell Bench Press", "One-Arm Dumbbell Row", "Dumbbell Shoulder Press", "Chest-Supported Dumbbell Row", "Push-Up", "Band Pull-Apart", "Dumbbell Hammer Curl"},
			TierGym:        {"Barbell Bench Press", "Barbell Row", "Overhead Press", "Lat Pulldown", "Incline Dumbbell Press", "Seated Cable Row", "Face Pull"},
		},
		FocusLower: {
			TierBodyweight: {"Bodyweight Squat", "Reverse Lunge", "Glute Bridge", "Single-Leg Romanian Deadlift", "Step-Up", "Wall Sit", "Lateral Lunge"},
			TierHome:       {"Goblet Squat", "Dumbbell Romanian Deadlift", "Dumbbell Walking Lunge", "Dumbbell Hip Thrust", "Dumbbell Step-Up", "Kettlebell Swing", "Dumbbell Calf Raise"},
			TierGym:        {"Barbell Back Squat", "Romanian Deadlift", "Leg Press", "Hip Thrust", "Walking Lunge", "Leg Curl Machine", "Standing Calf Raise"},
		},
		FocusFullBody: {
			TierBodyweight: {"Bodyweight Squat", "Push-Up", "Inverted Row", "Reverse Lunge", "Glute Bridge", "Plank", "Burpee", "Mountain Climber"},
			TierHome:       {"Goblet Squat", "Dumbbell Bench Press", "One-Arm Dumbbell Row", "Dumbbell Romanian Deadlift", "Kettlebell Swing", "Dumbbell Thruster", "Renegade Row"},
			TierGym:        {"Barbell Back Squat", "Barbell Bench Press", "Barbell Row", "Romanian Deadlift", "Overhead Press", "Pull-Up", "Farmer's Carry"},
		},
		FocusConditioning: {
			TierBodyweight: {"Burpee", "Mountain Climber", "Jumping Jack", "High Knees", "Squat Jump", "Skater Hop", "Bear Crawl", "Shadow Boxing"},
			TierHome:       {"Kettlebell Swing", "Dumbbell Thruster", "Burpee", "Mountain Climber", "Dumbbell Snatch", "Jump Rope", "Squat Jump"},
			TierGym:        {"Rowing Machine Intervals", "Assault Bike Sprint", "Sled Push", "Kettlebell Swing", "Battle Rope Waves", "Ski Erg Intervals", "Burpee"},
		},
		FocusRecovery: {
			TierBodyweight: recoveryMoves,
			TierHome:       recoveryMoves,
			TierGym:        {"Brisk Walk", "Stationary Bike Easy Spin", "Foam Rolling", "Cat-Cow", "Hip Flexor Stretch", "Thoracic Rotation", "Child's Pose"},
		},
	}
}

func byFocus(upper, lower, full, rest []string) map[string][]string {
	return map[string][]string{
		FocusPush:         upper,
		FocusPull:         upper,
		FocusUpper:        upper,
		FocusLegs:         lower,
		FocusLower:        lower,
		FocusFullBody:     full,
		FocusConditioning: full,
		FocusRecovery:     rest,
	}
}

func defaultWarmups() map[string][]string {
	return byFocus(
		[]string{"Arm Circles", "Scapular Push-Up", "Cat-Cow"},
		[]string{"Leg Swings", "Hip Circles", "Bodyweight Good Morning"},
		[]string{"Jumping Jack", "Inchworm", "World's Greatest Stretch"},
		[]string{"Easy Walk"},
	)
}

func defaultCooldowns() map[string][]string {
	return byFocus(
		[]string{"Doorway Chest Stretch", "Child's Pose"},
		[]string{"Hamstring Stretch", "Couch Stretch"},
		[]string{"Child's Pose", "Hamstring Stretch"},
		[]string{"Box Breathing"},
	)
}

func meal(name string, items ...string) domain.Meal {
	m := domain.Meal{Name: name}
	for i := 0; i+1 < len(items); i += 2 {
		m.Items = append(m.Items, domain.MealItem{Food: items[i], Qty: items[i+1]})
	}
	return m
}

func defaultMeals() map[DietTier]MealTemplates {
	return map[DietTier]MealTemplates{
		DietOmnivore: {
			Breakfast: meal("Breakfast", "Oatmeal", "80g", "Greek yogurt", "200g", "Blueberries", "100g"),
			Lunch:     meal("Lunch", "Grilled chicken breast", "150g", "Brown rice", "180g cooked", "Mixed salad greens", "100g", "Olive oil", "1 tbsp"),
			Dinner:    meal("Dinner", "Baked salmon", "150g", "Roasted sweet potato", "200g", "Steamed broccoli", "150g"),
			Snacks: []domain.Meal{
				meal("Snack", "Apple", "1 medium", "Almonds", "25g"),
				meal("Snack", "Cottage cheese", "150g", "Pineapple chunks", "100g"),
				meal("Snack", "Protein shake (whey)", "1 scoop", "Banana", "1 medium"),
			},
		},
		DietEggitarian: {
			Breakfast: meal("Breakfast", "Scrambled eggs", "3 large", "Whole-grain toast", "2 slices", "Spinach", "50g"),
			Lunch:     meal("Lunch", "Chickpea curry", "250g", "Basmati rice", "180g cooked", "Cucumber raita", "100g"),
			Dinner:    meal("Dinner", "Lentil dal", "250g", "Quinoa", "150g cooked", "Sauteed spinach", "100g", "Boiled eggs", "2 large"),
			Snacks: []domain.Meal{
				meal("Snack", "Greek yogurt", "200g", "Walnuts", "20g"),
				meal("Snack", "Boiled eggs", "2 large", "Carrot sticks", "100g"),
				meal("Snack", "Protein shake (whey)", "1 scoop", "Banana", "1 medium"),
			},
		},
		DietVegetarian: {
			Breakfast: meal("Breakfast", "Overnight oats with milk", "250g", "Chia seeds", "15g", "Berries", "100g"),
			Lunch:     meal("Lunch", "Paneer tikka", "150g", "Brown rice", "180g cooked", "Mixed salad greens", "100g"),
			Dinner:    meal("Dinner", "Tofu stir-fry", "200g", "Quinoa", "150g cooked", "Stir-fried vegetables", "150g"),
			Snacks: []domain.Meal{
				meal("Snack", "Greek yogurt", "200g", "Almonds", "25g"),
				meal("Snack", "Hummus", "60g", "Carrot sticks", "100g"),
				meal("Snack", "Roasted chickpeas", "40g", "Apple", "1 medium"),
			},
		},
	}
}

func defaultPalettes() map[DietTier][]domain.Meal {
	return map[DietTier][]domain.Meal{
		DietOmnivore: {
			meal("Turkey wrap", "Whole-wheat tortilla", "1 large", "Sliced turkey breast", "120g", "Mixed salad greens", "60g"),
			meal("Tuna rice bowl", "Canned tuna", "120g", "Brown rice", "150g cooked", "Edamame", "80g"),
			meal("Beef and quinoa", "Lean ground beef", "130g", "Quinoa", "150g cooked", "Roasted peppers", "100g"),
		},
		DietEggitarian: {
			meal("Egg fried rice", "Eggs", "2 large", "Brown rice", "180g cooked", "Mixed vegetables", "100g"),
			meal("Paneer wrap", "Whole-wheat tortilla", "1 large", "Paneer", "100g", "Spinach", "50g"),
			meal("Lentil bowl", "Lentil dal", "250g", "Quinoa", "150g cooked", "Cucumber", "100g"),
		},
		DietVegetarian: {
			meal("Tofu rice bowl", "Firm tofu", "150g", "Brown rice", "180g cooked", "Edamame", "80g"),
			meal("Paneer wrap", "Whole-wheat tortilla", "1 large", "Paneer", "100g", "Spinach", "50g"),
			meal("Chickpea quinoa bowl", "Chickpeas", "150g", "Quinoa", "150g cooked", "Roasted peppers", "100g"),
		},
	}
}

func defaultReplacements() map[string][]string {
	return map[string][]string{
		"barbell back squat":  {"Goblet Squat", "Bodyweight Squat"},
		"front squat":         {"Goblet Squat", "Bodyweight Squat"},
		"barbell bench press": {"Dumbbell Bench Press", "Push-Up"},
		"bench press":         {"Dumbbell Floor Press", "Push-Up"},
		"overhead press":      {"Dumbbell Shoulder Press", "Pike Push-Up"},
		"deadlift":            {"Dumbbell Romanian Deadlift", "Single-Leg Romanian Deadlift"},
		"barbell row":         {"One-Arm Dumbbell Row", "Inverted Row"},
		"cable row":           {"One-Arm Dumbbell Row", "Inverted Row"},
		"pull-up":             {"Lat Pulldown", "Inverted Row"},
		"lat pulldown":        {"Pull-Up", "Inverted Row"},
		"leg press":           {"Goblet Squat", "Bodyweight Squat"},
		"leg curl":            {"Dumbbell Romanian Deadlift", "Glute Bridge"},
		"hip thrust":          {"Dumbbell Hip Thrust", "Glute Bridge"},
		"cable fly":           {"Dumbbell Fly", "Push-Up"},
		"dip":                 {"Bench Dip", "Diamond Push-Up"},
		"lunge":               {"Glute Bridge", "Step-Up"},
		"jump":                {"Step-Up", "Marching in Place"},
		"running":             {"Brisk Walk", "Marching in Place"},
		"burpee":              {"Mountain Climber", "Bear Crawl"},
		"kettlebell swing":    {"Dumbbell Romanian Deadlift", "Glute Bridge"},
		"sled":                {"Walking Lunge", "Step-Up"},
		"bike":                {"Brisk Walk", "Marching in Place"},
	}
}

func defaultRecovery() map[string][]RecoveryTemplate {
	sleep := []string{"Aim for 7-9 hours of sleep", "Keep a consistent wake time"}
	return map[string][]RecoveryTemplate{
		"upper": {
			{Mobility: []string{"Thoracic rotations 2x10", "Doorway chest stretch 2x30s"}, Sleep: sleep},
			{Mobility: []string{"Wall slides 2x12", "Cross-body shoulder stretch 2x30s"}, Sleep: sleep, CareNotes: []string{"Ease off if shoulders feel pinchy"}},
		},
		"lower": {
			{Mobility: []string{"Hip flexor stretch 2x30s", "Ankle rocks 2x10"}, Sleep: sleep},
			{Mobility: []string{"90/90 hip switches 2x8", "Hamstring floss 2x10"}, Sleep: sleep, CareNotes: []string{"Light walk in the evening to reduce soreness"}},
		},
		"full": {
			{Mobility: []string{"World's greatest stretch 2x5 per side", "Cat-cow 2x10"}, Sleep: sleep},
			{Mobility: []string{"Deep squat hold 3x30s", "Thread the needle 2x8"}, Sleep: sleep},
		},
		"rest": {
			{Mobility: []string{"20-30 min easy walk", "Full-body stretch 10 min"}, Sleep: sleep, CareNotes: []string{"Use the day to recover and prepare meals"}},
			{Mobility: []string{"Foam rolling 10 min", "Gentle yoga flow 15 min"}, Sleep: sleep},
			{Mobility: []string{"Light cycling 20 min", "Box breathing 5 min"}, Sleep: sleep, CareNotes: []string{"Keep intensity conversational"}},
		},
	}
}

var (
	meatTokens = []string{"chicken", "beef", "pork", "lamb", "mutton", "turkey", "bacon", "sausage", "steak", "veal", "duck", "salami", "pepperoni", "prosciutto", "chorizo", "jerky", "venison", "meat"}
	fishTokens = []string{"fish", "salmon", "tuna", "cod", "tilapia", "shrimp", "prawn", "crab", "lobster", "sardine", "mackerel", "anchov", "seafood", "trout", "halibut", "scallop", "squid", "mussel", "oyster"}
	eggTokens  = []string{"egg", "omelet", "frittata"}
	eggExcept  = []string{"veggie", "eggplant"}
)

func defaultFoodRules() map[DietTier][]FoodRule {
	return map[DietTier][]FoodRule{
		DietOmnivore: nil,
		DietEggitarian: {
			{Category: "meat", Tokens: meatTokens, Swaps: []string{"Boiled eggs", "Paneer tikka", "Grilled tofu"}},
			{Category: "fish", Tokens: fishTokens, Swaps: []string{"Egg white scramble", "Grilled tofu"}},
		},
		DietVegetarian: {
			{Category: "meat", Tokens: meatTokens, Swaps: []string{"Grilled tofu", "Paneer tikka", "Tempeh strips"}},
			{Category: "fish", Tokens: fishTokens, Swaps: []string{"Marinated tempeh", "Grilled tofu"}},
			{Category: "egg", Tokens: eggTokens, Except: eggExcept, Swaps: []string{"Tofu scramble", "Besan chilla"}},
		},
	}
}

func defaultPlaceholders() map[string]map[DietTier]string {
	protein := map[DietTier]string{DietOmnivore: "Chicken breast", DietEggitarian: "Egg whites", DietVegetarian: "Paneer"}
	carbs := map[DietTier]string{DietOmnivore: "Brown rice", DietEggitarian: "Brown rice", DietVegetarian: "Brown rice"}
	fats := map[DietTier]string{DietOmnivore: "Almonds", DietEggitarian: "Almonds", DietVegetarian: "Almonds"}
	vegetables := map[DietTier]string{DietOmnivore: "Mixed vegetables", DietEggitarian: "Mixed vegetables", DietVegetarian: "Mixed vegetables"}
	return map[string]map[DietTier]string{
		"lean protein":          protein,
		"protein source":        protein,
		"protein of choice":     protein,
		"complex carbs":         carbs,
		"complex carbohydrates": carbs,
		"carb source":           carbs,
		"healthy fats":          fats,
		"fat source":            fats,
		"vegetables of choice":  vegetables,
		"veggies":               vegetables,
	}
}

func defaultUnavailableEquipment() map[EquipmentTier][]string {
	common := []string{"cable", "machine", "smith", "leg press", "lat pulldown", "sled", "ez-bar", "ez bar", "trap bar", "treadmill", "rower", "ski erg", "assault bike", "pec deck"}
	home := append([]string{"barbell"}, common...)
	bodyweight := append([]string{"barbell", "dumbbell", "kettlebell", "band", "weighted"}, common...)
	return map[EquipmentTier][]string{
		TierBodyweight: bodyweight,
		TierHome:       home,
		TierGym:        nil,
	}
}
