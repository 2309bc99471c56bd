// Package config provides configuration parsing for cargo projects.
//
// The configuration is stored in cargo.json at the project root. Every
// field is optional; missing values take the defaults below.
//
//	{
//	  "server": {
//	    "host": "localhost",
//	    "port": 3000,
//	    "readTimeout": "10s",
//	    "shutdownTimeout": "5s"
//	  },
//	  "render": {
//	    "pretty": false,
//	    "lang": "en",
//	    "clientScript": "/main.js",
//	    "styles": ["/app.css"]
//	  },
//	  "islands": {
//	    "dir": "dist",
//	    "scriptPrefix": "/island-"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "cargo",
//	    "path": "/metrics"
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
