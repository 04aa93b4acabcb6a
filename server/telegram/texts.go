package telegram

// Menu button labels. They double as match keys for incoming messages.
const (
	buttonNewTrade = "➕ New trade"
	buttonStats    = "📊 Stats"
	buttonHelp     = "❓ Help"
	buttonDone     = "✅ Done"
	buttonCancel   = "❌ Cancel"
)

const welcomeText = "👋 Welcome to TradeMind!\n\n" +
	"I keep your trading journal: send me the screenshots of a trade and a\n" +
	"short description, and I will put together a labeled collage for you.\n\n" +
	"Press \"" + buttonNewTrade + "\" to record a trade."

const helpText = "ℹ️ How it works:\n\n" +
	"1. Press \"" + buttonNewTrade + "\" (or send /new).\n" +
	"2. Send one or more screenshots of the trade.\n" +
	"3. Press \"" + buttonDone + "\".\n" +
	"4. Describe the trade with a voice message or text:\n" +
	"   the asset, the scenario and the date.\n\n" +
	"I will reply with a collage labeled with the extracted details.\n" +
	"Send /cancel at any point to start over."

const mainMenuText = "Choose an action:"

const statsText = "📊 Stats\n\n🚧 Trade statistics are not available yet."
