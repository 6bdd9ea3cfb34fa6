package core

const sampleCatalog = `{
  "definitions": {
    "loom": {
      "filter": "^1\\.6\\.",
      "pom": "https://maven.example/dev/architectury/architectury-loom/maven-metadata.xml"
    },
    "plugin": {
      "filter": "^3\\.4\\.",
      "pom": "https://maven.example/architectury-plugin/architectury-plugin.gradle.plugin/maven-metadata.xml"
    },
    "injectables": {
      "filter": ".*",
      "locator": "https://maven.example/dev/architectury/architectury-injectables/maven-metadata.xml"
    }
  },
  "versions": {
    "1.20.1": {
      "api": {
        "filter": "^9\\.",
        "pom": "https://maven.example/dev/architectury/architectury/maven-metadata.xml"
      },
      "plugin": "@plugin",
      "loom": "@loom",
      "injectables": "@injectables"
    },
    "1.20.4": {
      "stable": true,
      "api": {
        "filter": "^11\\.",
        "pom": "https://maven.example/dev/architectury/architectury/maven-metadata.xml"
      },
      "plugin": "@plugin",
      "loom": "@loom",
      "injectables": "@injectables"
    },
    "1.19.2": {
      "stable": true,
      "api": {
        "filter": "^6\\.",
        "pom": "https://maven.example/dev/architectury/architectury/maven-metadata.xml"
      },
      "plugin": "@plugin",
      "loom": "@loom",
      "injectables": "@injectables"
    },
    "1.21": {
      "api": "@missing",
      "plugin": "@plugin",
      "loom": "@loom",
      "injectables": "@injectables"
    }
  }
}`
