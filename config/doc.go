/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package config reads errorable settings with viper.
//
// A configuration file names exception registrations; the program binds
// each name to a Go error value whose dynamic type is registered:
//
//	enabled: true
//	reveal_raw_error: false
//	log:
//	  format: json
//	  level: error
//	exceptions:
//	  not_found:
//	    status: 404
//	    title: Record Missing
//	    message_from_error: true
//	    log: false
//
//	cfg, err := config.Read("errorable.yaml")
//	err = config.Apply(cfg, reg, errorable.DefaultState(), config.Bindings{
//		"not_found": &store.NotFoundError{},
//	})
//
// Every key can be overridden from the environment with the ERRORABLE_
// prefix, e.g. ERRORABLE_LOG_FORMAT=logfmt.
package config
