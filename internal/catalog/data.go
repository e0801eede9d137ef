package catalog

var exercises = []string{
	"Bench Press (Barbell)",
	"Bench Press (Dumbbell)",
	"Incline Bench Press (Barbell)",
	"Incline Bench Press (Dumbbell)",
	"Overhead Press (Barbell)",
	"Overhead Press (Dumbbell)",
	"Lateral Raise (Dumbbell)",
	"Lateral Raise (Cable)",
	"Front Raise",
	"Tricep Pushdown",
	"Tricep Extension (Dumbbell)",
	"Skullcrushers",
	"Bicep Curl (Barbell)",
	"Bicep Curl (Dumbbell)",
	"Hammer Curl",
	"Squat (Barbell)",
	"Leg Press",
	"Leg Extension",
	"Leg Curl",
	"Deadlift (Barbell)",
	"Romanian Deadlift",
	"Lunges",
	"Pull Up",
	"Lat Pulldown",
	"Seated Row",
	"Bent Over Row (Barbell)",
	"One Arm Row (Dumbbell)",
	"Plank",
	"Crunches",
	"Leg Raise",
	"Push Ups",
	"Dips",
	"Chin Ups",
	"Face Pulls",
	"Calf Raise",
	"Hip Thrust",
	"Box Jump",
	"Burpees",
	"Mountain Climbers",
	"Kettlebell Swing",
	"Snatch",
	"Clean and Jerk",
	"Front Squat",
	"Goblet Squat",
	"Turkish Get Up",
	"Arnold Press",
	"Reverse Flys",
	"Bulgarian Split Squat",
	"Preacher Curl",
	"Concentration Curl",
}

var foods = []Food{
	// proteins
	{"Paneer (Cottage Cheese)", 265, 18.3, 1.2, 20.8, "100g"},
	{"Chicken Breast (Grilled)", 165, 31, 0, 3.6, "100g"},
	{"Chicken Thigh (Skinless)", 209, 26, 0, 10.9, "100g"},
	{"Egg (Large, Whole)", 78, 6.3, 0.6, 5.3, "piece"},
	{"Egg White", 17, 3.6, 0.2, 0.1, "piece"},
	{"Whey Protein Powder", 120, 25, 3, 1.5, "scoop"},
	{"Soya Chunks (Dry)", 345, 52, 33, 0.5, "100g"},
	{"Fish (Rohu/Katla - Raw)", 97, 17.3, 0, 2.3, "100g"},
	{"Mutton (Lean - Raw)", 143, 20, 0, 6, "100g"},
	{"Greek Yogurt (Plain)", 59, 10, 3.6, 0.4, "100g"},
	{"Curd / Dahi (Full Cream)", 98, 3, 4.7, 7.5, "100g"},
	{"Curd / Dahi (Low Fat)", 60, 4, 5, 2, "100g"},

	// breads
	{"Roti (Whole Wheat)", 71, 3, 15, 0.4, "piece"},
	{"Roti with Ghee", 105, 3, 15, 4.5, "piece"},
	{"Bajra Roti", 110, 3.5, 22, 1.5, "piece"},
	{"Jowar Roti", 120, 4, 24, 1.2, "piece"},
	{"Missi Roti", 150, 6, 25, 3, "piece"},
	{"Makki ki Roti", 145, 3, 28, 3.5, "piece"},
	{"Naan (Plain)", 260, 8, 45, 5, "piece"},
	{"Butter Naan", 310, 8, 45, 11, "piece"},
	{"Garlic Naan", 320, 9, 46, 12, "piece"},
	{"Laccha Paratha", 280, 5, 35, 14, "piece"},
	{"Aloo Paratha", 290, 6, 45, 10, "piece"},
	{"Paneer Paratha", 340, 12, 42, 14, "piece"},
	{"White Bread", 75, 2, 14, 1, "slice"},
	{"Brown Bread", 70, 3, 12, 1, "slice"},
	{"Multigrain Bread", 85, 4, 15, 1.2, "slice"},
	{"Pav (Bread Roll)", 120, 4, 24, 1, "piece"},

	// rice and dal
	{"Basmati Rice (Cooked)", 130, 2.7, 28, 0.3, "100g"},
	{"Brown Rice (Cooked)", 111, 2.6, 23, 0.9, "100g"},
	{"Dal Tadka", 150, 7, 18, 6, "100g"},
	{"Dal Makhani", 180, 6, 16, 11, "100g"},
	{"Sambhar", 60, 3, 9, 1.5, "100g"},
	{"Rajma Masala", 140, 7, 15, 6, "100g"},
	{"Chole Masala", 165, 8, 22, 5, "100g"},
	{"Moong Dal Khichdi", 120, 5, 23, 1, "100g"},
	{"Veg Biryani", 150, 4, 28, 3.5, "100g"},
	{"Chicken Biryani", 180, 12, 24, 6, "100g"},
	{"Jeera Rice", 140, 3, 30, 1.5, "100g"},
	{"Curd Rice", 110, 3, 19, 3, "100g"},
	{"Lemon Rice", 155, 3, 28, 4, "100g"},

	// breakfast and snacks
	{"Poha", 180, 4, 35, 2.5, "100g"},
	{"Idli", 58, 2, 12, 0.1, "piece"},
	{"Dosa (Plain)", 120, 3, 24, 1.5, "piece"},
	{"Masala Dosa", 250, 5, 45, 8, "piece"},
	{"Rava Upma", 150, 4, 28, 3, "100g"},
	{"Vada (Medu)", 140, 4, 12, 9, "piece"},
	{"Appam", 120, 2, 25, 1, "piece"},
	{"Dhokla", 80, 3, 12, 2, "piece"},
	{"Khandvi", 45, 2, 6, 1.5, "piece"},
	{"Sabudana Khichdi", 220, 2, 48, 5, "100g"},
	{"Paneer Tikka", 180, 15, 4, 12, "piece"},
	{"Samosa", 210, 4, 25, 11, "piece"},
	{"Onion Pakora", 60, 1, 6, 4, "piece"},
	{"Vada Pav", 300, 8, 42, 12, "piece"},
	{"Bhel Puri", 185, 4, 35, 4, "100g"},
	{"Pani Puri", 35, 0.5, 6, 1, "piece"},
	{"Pav Bhaji (Bhaji only)", 150, 4, 22, 6, "100g"},
	{"Aloo Tikki", 130, 2, 18, 6, "piece"},

	// curries and vegetables
	{"Palak Paneer", 140, 9, 6, 10, "100g"},
	{"Mix Veg Curry", 95, 3, 12, 5, "100g"},
	{"Aloo Gobhi", 110, 3, 15, 5, "100g"},
	{"Bhindi Masala", 90, 2.5, 11, 4.5, "100g"},
	{"Baingan Bharta", 85, 2, 10, 5, "100g"},
	{"Mutter Paneer", 145, 8, 10, 9, "100g"},
	{"Butter Chicken", 240, 18, 8, 16, "100g"},
	{"Chicken Curry", 160, 15, 5, 9, "100g"},
	{"Chicken Tikka Masala", 190, 16, 8, 11, "100g"},
	{"Fish Curry (Goan Style)", 145, 14, 4, 8, "100g"},
	{"Mutton Rogan Josh", 220, 17, 6, 15, "100g"},
	{"Prawn Masala", 130, 16, 5, 5, "100g"},

	// regional
	{"Litti Chokha (Litti only)", 180, 6, 35, 2, "piece"},
	{"Misal Pav (Misal only)", 160, 7, 20, 6, "100g"},
	{"Hyderabadi Haleem", 250, 18, 15, 14, "100g"},
	{"Sarson ka Saag", 90, 4, 10, 4, "100g"},
	{"Puttu", 190, 5, 40, 1.5, "100g"},
	{"Kadhai Paneer", 210, 11, 7, 16, "100g"},
	{"Chicken 65", 230, 22, 8, 12, "100g"},

	// fruit, nuts, dairy
	{"Banana", 105, 1.3, 27, 0.3, "piece"},
	{"Apple", 95, 0.5, 25, 0.3, "piece"},
	{"Mango (Medium)", 150, 1.5, 36, 0.6, "piece"},
	{"Almonds", 7, 0.25, 0.25, 0.6, "piece"},
	{"Walnuts", 26, 0.6, 0.5, 2.5, "piece"},
	{"Cashews", 9, 0.3, 0.5, 0.7, "piece"},
	{"Peanut Butter", 95, 4, 3, 8, "tbsp"},
	{"Milk (Full Cream)", 65, 3.3, 4.8, 3.7, "ml"},
	{"Milk (Skimmed)", 35, 3.4, 5, 0.1, "ml"},
	{"Ghee", 110, 0, 0, 12, "tbsp"},
	{"Honey", 60, 0, 17, 0, "tbsp"},

	// desserts
	{"Gulab Jamun", 150, 2, 25, 5, "piece"},
	{"Rasgulla", 120, 3, 25, 1.5, "piece"},
	{"Jalebi", 50, 0.2, 9, 1.5, "piece"},
	{"Kaju Katli", 55, 1, 7, 3, "piece"},
	{"Ladoo (Besan)", 180, 4, 25, 8, "piece"},
	{"Gajar Halwa", 170, 3, 22, 8, "100g"},
	{"Rasmalai", 180, 5, 22, 8, "piece"},
}
