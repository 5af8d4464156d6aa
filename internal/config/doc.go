// Package config loads vlite project configuration.
//
// Configuration lives in vlite.json or vlite.yaml at the project root; when
// both exist, vlite.json wins. Every field is optional.
//
// # Configuration File Structure
//
//	{
//	  "name": "todos",
//	  "mountId": "app",
//	  "title": "vlite • TodoMVC",
//	  "render": {
//	    "keyedTag": "ul",
//	    "keyedClass": "keyed-list",
//	    "stateClass": "editing",
//	    "maxPasses": 100
//	  },
//	  "dev": {
//	    "port": 4000,
//	    "host": "localhost",
//	    "metrics": true
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  },
//	  "todos": ["Buy milk"]
//	}
//
// The same document in YAML:
//
//	mountId: app
//	dev:
//	  port: 4000
//	todos:
//	  - Buy milk
//
// # Usage
//
//	cfg, err := config.LoadOrDefault(".")
//	if err != nil {
//	    errors.Print(os.Stderr, err)
//	    os.Exit(1)
//	}
//	fmt.Println("Listening on", cfg.Address())
package config
