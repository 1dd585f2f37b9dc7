// Package naming derives canonical service identifiers from fully qualified
// type names.
//
// # Pipeline
//
// A type name such as Contao\CoreBundle\EventListener\BackendMenuListener is
// first normalized into lowercase, underscore-cased segments:
//
//	contao, core_bundle, event_listener, backend_menu_listener
//
// Derive then walks those segments:
//
//  1. The first segment must be the vendor token.
//  2. The second segment must end with the grouping suffix (_bundle). The
//     group name forms the identifier prefix (contao_<group>), except the
//     core group which collapses to the vendor token.
//  3. The last segment is the candidate name.
//  4. The middle segments are renamed or dropped; the first survivor is the
//     category, the rest the path.
//  5. A configured prefix is stripped from the name.
//  6. Name tokens echoing the vendor, the category or the path are pruned.
//  7. A name equal to the category drops the category.
//
// The result is the dot-joined prefix, category, path and name:
//
//	contao.listener.backend_menu
//
// Types outside the vendor/group convention are not applicable and yield no
// identifier. Derive is a pure function of the type name and the rule tables.
//
// # Rule Tables
//
// Alias, rename and strip-prefix tables are ordered; the first matching entry
// wins. Use DefaultRuleTables for the stock Contao tables or build a
// RuleTables value from configuration.
package naming
