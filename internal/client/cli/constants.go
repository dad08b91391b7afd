package cli

// Starting avatars and bubble colors assigned randomly at registration.
var avatars = []string{
	"https://i.postimg.cc/J7cRW2Y6/86DE4C.png",
	"https://i.postimg.cc/v8LGdN23/9765.png",
	"https://i.postimg.cc/qBXpd5Dy/9766.png",
	"https://i.postimg.cc/v8LGdN2v/C2CF6E8.png",
}

var colors = []string{
	"bg-blue-500",
	"bg-green-500",
	"bg-purple-500",
	"bg-pink-500",
	"bg-yellow-500",
	"bg-indigo-500",
}

// startingCredits is the balance a fresh account begins with.
const startingCredits = 50

type shopItem struct {
	ID    string
	Name  string
	Class string
	Price int
}

// shopItems are the name colors purchasable with credits.
var shopItems = []shopItem{
	{ID: "neon-blue", Name: "Neon Blue", Class: "text-cyan-400", Price: 10},
	{ID: "gold", Name: "Golden Legend", Class: "text-yellow-400", Price: 10},
	{ID: "rose", Name: "Rose Pink", Class: "text-pink-400", Price: 10},
	{ID: "lime", Name: "Toxic Lime", Class: "text-lime-400", Price: 10},
	{ID: "red", Name: "Red Alert", Class: "text-red-500", Price: 10},
	{ID: "purple", Name: "Royal Purple", Class: "text-purple-400", Price: 10},
}
