// Package loader finds service configuration documents on disk and parses
// their service declarations into lint records.
//
// Documents are YAML files with a top-level services mapping:
//
//	services:
//	    _defaults:
//	        autoconfigure: true
//
//	    contao.listener.backend_menu:
//	        class: Contao\CoreBundle\EventListener\BackendMenuListener
//
// Declaration order is preserved. Declarations without a class field
// (aliases, short syntax, parent-only definitions) are not turned into
// records; custom tags such as !tagged_iterator are tolerated.
package loader
