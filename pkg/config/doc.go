// Package config supplies the model slots the factory resolves.
//
// Settings are layered: built-in defaults, then an optional YAML file, then
// the environment. A .env file can be loaded into the environment first with
// LoadDotEnv. Provider credentials are read from the environment only.
//
// Example models.yaml:
//
//	log_level: debug
//	models:
//	  portfolio_manager:
//	    provider: anthropic
//	    model: claude-3-opus
//	    temperature: 0.2
//	  nlp_features: gpt-4o-mini      # legacy form, served by openai at 0.7
//	  assess_significance:
//	    provider: groq
//	    model: llama-3.1-8b-instant
//
// Environment overrides: LOG_LEVEL, MODEL_PORTFOLIO_MANAGER, MODEL_NLP_FEATURES,
// MODEL_ASSESS_SIGNIFICANCE, MODEL_ENHANCED_SUMMARY, and the
// {OPENAI,ANTHROPIC,GROQ}_{API_KEY,BASE_URL} credentials.
package config
