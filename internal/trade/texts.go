package trade

// CollageFilename is the attachment name of the delivered composite.
const CollageFilename = "trade_collage.jpg"

// User-facing messages of the capture conversation.
const (
	msgNewTrade = "📸 New trade\n\n" +
		"Send the trade screenshots (several are fine).\n" +
		"Press \"✅ Done\" when you are finished."
	msgScreenshotReceived = "✅ Screenshot #%d received!\nSend another or press \"✅ Done\"."
	msgNoScreenshots      = "⚠️ You have not sent a single screenshot!\n" +
		"Send at least one or press \"❌ Cancel\"."
	msgCreatingCollage = "⏳ Creating the collage..."
	msgCollageReady    = "🖼 Collage ready!\n📸 Images stitched: %d"
	msgDescribeTrade   = "🎤 Now describe the trade:\n" +
		"• send a voice message, or\n" +
		"• type it as text"
	msgTranscribed         = "🎤 Recognized: %s"
	msgDownloadFailed      = "❌ Could not download the screenshots. Please start over."
	msgCollageFailed       = "❌ Could not create the collage. Please start over."
	msgDeliveryFailed      = "❌ Could not deliver the collage. Please start over."
	msgTranscriptionFailed = "🎤 Could not recognize the audio. Send it again or type the description."
	msgNoSpeechDetected    = "🎤 No speech detected in the audio. Try again or type the description."
	msgExtractionFailed    = "🤔 Could not extract the trade details.\n" +
		"Describe the trade in more detail: asset, scenario and date."
	msgTradeCaption = "📌 Trade %s\n🎯 Scenario: %s\n📅 Date: %s"
	msgTradeSaved   = "✅ Trade recorded!"
	msgCanceled     = "❌ Action canceled."
	msgNothingToCancel = "🤷 Nothing to cancel."
	msgInternalError   = "😵 Something went wrong. Please try again."
)
